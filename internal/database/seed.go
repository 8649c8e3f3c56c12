package database

import (
	"context"
	"fmt"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

var seedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// seedQuestions reference categories by their position in seedCategories
var seedQuestions = []struct {
	question, answer string
	category         int
	difficulty       int
}{
	{"Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", 4, 2},
	{"What boxer's original name is Cassius Clay?", "Muhammad Ali", 4, 1},
	{"What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", "Apollo 13", 5, 4},
	{"What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", "Tom Cruise", 5, 4},
	{"What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", "Edward Scissorhands", 5, 3},
	{"Which is the only team to play in every soccer World Cup tournament?", "Brazil", 6, 3},
	{"Which country won the first ever soccer World Cup in 1930?", "Uruguay", 6, 4},
	{"Who invented Peanut Butter?", "George Washington Carver", 4, 2},
	{"What is the largest lake in Africa?", "Lake Victoria", 3, 2},
	{"In which royal palace would you find the Hall of Mirrors?", "The Palace of Versailles", 3, 3},
	{"The Taj Mahal is located in which Indian city?", "Agra", 3, 2},
	{"Which Dutch graphic artist, initials M C, was a creator of optical illusions?", "Escher", 2, 1},
	{"La Giaconda is better known as what?", "Mona Lisa", 2, 3},
	{"How many paintings did Van Gogh sell in his lifetime?", "One", 2, 4},
	{"What is the heaviest organ in the human body?", "The Liver", 1, 4},
	{"Who discovered penicillin?", "Alexander Fleming", 1, 3},
	{"Hematology is a branch of medicine involving the study of what?", "Blood", 1, 4},
	{"Which dung beetle was worshipped by the ancient Egyptians?", "Scarab", 4, 4},
}

// Seed fills an empty store with the classic trivia categories and questions.
// It returns false when categories already exist.
func Seed(ctx context.Context, categories domain.CategoryRepository, questions domain.QuestionRepository) (bool, error) {
	existing, err := categories.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	ids := make([]int, len(seedCategories))
	for i, name := range seedCategories {
		c := &domain.Category{Type: name}
		if err := categories.Create(ctx, c); err != nil {
			return false, fmt.Errorf("seed category %q: %w", name, err)
		}
		ids[i] = c.ID
	}

	batch := make([]*domain.Question, 0, len(seedQuestions))
	for _, q := range seedQuestions {
		batch = append(batch, &domain.Question{
			Question:   q.question,
			Answer:     q.answer,
			Category:   ids[q.category-1],
			Difficulty: q.difficulty,
		})
	}
	if err := questions.BulkCreate(ctx, batch); err != nil {
		return false, fmt.Errorf("seed questions: %w", err)
	}
	return true, nil
}
