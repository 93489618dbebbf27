package model

import "time"

// QuizResult is one quiz-history record under a class. It exists to drive
// group scoring; nothing reads it back afterwards.
type QuizResult struct {
	ID        string    `bson:"_id" json:"id"`
	ClassID   string    `bson:"classId" json:"classId"`
	UserID    string    `bson:"userId" json:"userId"`
	Stars     int64     `bson:"stars" json:"stars"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
