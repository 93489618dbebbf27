package model

import "time"

// Invite maps a short human-enterable join code to a class section.
// The code itself is the document ID, which makes uniqueness a storage
// guarantee rather than a read-then-write check.
type Invite struct {
	Code      string    `bson:"_id" json:"code"`
	ClassID   string    `bson:"classId" json:"classId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	// Legacy display fields, removed by the schema-v2 migration. They are
	// never written by current code but may still exist on old documents.
	ClassName   string `bson:"className,omitempty" json:"className,omitempty"`
	ClassIcon   string `bson:"classIcon,omitempty" json:"classIcon,omitempty"`
	ClassHour   string `bson:"classHour,omitempty" json:"classHour,omitempty"`
	ClassDesc   string `bson:"classDesc,omitempty" json:"classDesc,omitempty"`
	TeacherName string `bson:"teacherName,omitempty" json:"teacherName,omitempty"`
}
