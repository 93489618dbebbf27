package model

// ClassSummary is the denormalized class entry kept on a user document so
// the client can render the class list without a join.
type ClassSummary struct {
	ClassID     string `bson:"classId" json:"classId"`
	ClassName   string `bson:"className" json:"className"`
	ClassIcon   string `bson:"classIcon" json:"classIcon"`
	TeacherName string `bson:"teacherName" json:"teacherName"`
}

// User represents a user document. Users are provisioned by the identity
// provider; this service only mutates the denormalized classes list.
type User struct {
	ID        string         `bson:"_id" json:"id"`
	UserFirst string         `bson:"userFirst" json:"userFirst"`
	UserLast  string         `bson:"userLast" json:"userLast"`
	ImageSeed string         `bson:"userImageSeed,omitempty" json:"userImageSeed,omitempty"`
	Classes   []ClassSummary `bson:"classes,omitempty" json:"classes,omitempty"`
}

// DisplayName joins the user's first and last name for denormalized fields.
func (u *User) DisplayName() string {
	if u.UserFirst == "" && u.UserLast == "" {
		return ""
	}
	return u.UserFirst + " " + u.UserLast
}
