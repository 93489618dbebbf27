package model

import "time"

// ClassTemplate is the canonical descriptive record shared by class sections
// with the same name. Created once by the schema-v2 migration and referenced
// by sections via baseClassId; never mutated afterwards.
type ClassTemplate struct {
	ID        string    `bson:"_id" json:"id"`
	ClassName string    `bson:"className" json:"className"`
	ClassDesc string    `bson:"classDesc" json:"classDesc"`
	ClassIcon string    `bson:"classIcon" json:"classIcon"`
	Owner     string    `bson:"owner" json:"owner"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
