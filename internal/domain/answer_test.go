package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "beatles", NormalizeAnswer("  The Beatles! "))
	assert.Equal(t, "rock n roll", NormalizeAnswer("Rock 'n'   Roll"))
	assert.Equal(t, "apple", NormalizeAnswer("an apple"))
	assert.Equal(t, "theory", NormalizeAnswer("Theory"))
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		expected string
		guess    string
		want     bool
	}{
		{"Maya Angelou", "maya angelou", true},
		{"The Liver", "liver", true},
		{"Edward Scissorhands", "edward scisorhands", true},
		{"Mona Lisa", "the mona lisa painting", true},
		{"Brazil", "Uruguay", false},
		{"Agra", "", false},
		{"George Washington Carver", "carver", false},
		{"One", "Two", false},
	}
	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAnswer(tt.expected, tt.guess))
		})
	}
}
