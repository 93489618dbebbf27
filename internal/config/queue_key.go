package config

import "fmt"

// QueueKeyStruct names the Redis lists that carry document-creation events
// to the reactor workers.
type QueueKeyStruct struct {
	ClassCreatedQueue  string
	QuizSubmittedQueue string
}

var QueueKey = &QueueKeyStruct{
	ClassCreatedQueue:  "class_created_queue",
	QuizSubmittedQueue: "quiz_submitted_queue",
}

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key for an admin's active session.
func (r *CacheKeyStruct) AdminSessionKey(adminID string) string {
	return fmt.Sprintf("admin_login:%s", adminID)
}

// ScoreboardChannel returns the Redis PubSub channel name for a class's
// live scoreboard.
func (r *CacheKeyStruct) ScoreboardChannel(classID string) string {
	return fmt.Sprintf("class:%s:scoreboard", classID)
}

var CacheKey = NewCacheKeyStruct()
