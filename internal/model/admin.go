package model

import "time"

// Admin is a maintenance account allowed to run the schema migration
// endpoint. Provisioned with cmd/create-admin.
type Admin struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
