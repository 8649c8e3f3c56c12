package domain

// Event types broadcast to live clients
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)

// EventPublisher fans out domain events
type EventPublisher interface {
	Publish(eventType string, payload any)
}
