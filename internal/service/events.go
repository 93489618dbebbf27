package service

// ClassCreatedEvent is enqueued after a class document is created and
// consumed by the class-creation reactor.
type ClassCreatedEvent struct {
	ClassID string `json:"class_id"`
}

// QuizSubmittedEvent is enqueued after a quiz-history record is created and
// consumed by the quiz-result reactor.
type QuizSubmittedEvent struct {
	ClassID string `json:"class_id"`
	UserID  string `json:"user_id"`
	Stars   int64  `json:"stars"`
}

// ScoreUpdate is published on a class's scoreboard channel after a group
// score increment lands.
type ScoreUpdate struct {
	ClassID   string `json:"class_id"`
	GroupName string `json:"group_name"`
	Stars     int64  `json:"stars"`
	Score     int64  `json:"score"`
}
