package model

import "time"

// StudentSummary is the denormalized student entry kept on a class document.
type StudentSummary struct {
	StudentID   string `bson:"studentId" json:"studentId"`
	StudentIcon string `bson:"studentIcon" json:"studentIcon"`
	UserName    string `bson:"userName" json:"userName"`
}

// GroupMember is one member record inside a named group.
type GroupMember struct {
	UID  string `bson:"uId" json:"uId"`
	Name string `bson:"name" json:"name"`
	Icon string `bson:"icon" json:"icon"`
}

// Group is a named sub-team within a class tracking members and an
// aggregate score. Score only ever increases, via increment updates.
type Group struct {
	Members []GroupMember `bson:"members" json:"members"`
	Score   int64         `bson:"score" json:"score"`
}

// Class represents a class section document.
type Class struct {
	ID          string           `bson:"_id" json:"id"`
	Owner       string           `bson:"owner" json:"owner"`
	ClassName   string           `bson:"className" json:"className"`
	ClassIcon   string           `bson:"classIcon,omitempty" json:"classIcon,omitempty"`
	ClassDesc   string           `bson:"classDesc,omitempty" json:"classDesc,omitempty"`
	ClassHour   string           `bson:"classHour,omitempty" json:"classHour,omitempty"`
	BaseClassID string           `bson:"baseClassId,omitempty" json:"baseClassId,omitempty"`
	Students    []StudentSummary `bson:"students,omitempty" json:"students,omitempty"`
	Groups      map[string]Group `bson:"groups,omitempty" json:"groups,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Display fallbacks used when denormalizing from a class document with
// missing optional fields, matching what clients already expect.
const (
	DefaultClassName   = "Class"
	DefaultClassIcon   = "General"
	DefaultClassHour   = "Hour"
	DefaultClassDesc   = "Desc"
	DefaultStudentIcon = "abc"
	DefaultUserName    = "Student Name"
)

// IconOrDefault returns the class icon, falling back to the default.
func (c *Class) IconOrDefault() string {
	if c.ClassIcon == "" {
		return DefaultClassIcon
	}
	return c.ClassIcon
}

// NameOrDefault returns the class name, falling back to the default.
func (c *Class) NameOrDefault() string {
	if c.ClassName == "" {
		return DefaultClassName
	}
	return c.ClassName
}
