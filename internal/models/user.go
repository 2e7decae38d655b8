package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string        `bson:"name" json:"name"`
	Email               string        `bson:"email" json:"email"`
	Password            string        `bson:"password,omitempty" json:"-"`
	Role                string        `bson:"role,omitempty" json:"role,omitempty"`
	Profile             *Profile      `bson:"profile,omitempty" json:"profile,omitempty"`
	OnboardingCompleted bool          `bson:"onboardingCompleted,omitempty" json:"onboardingCompleted"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile is the onboarding questionnaire, stored as submitted.
type Profile struct {
	PersonalInfo PersonalInfo `bson:"personalInfo" json:"personalInfo"`
	Education    Education    `bson:"education" json:"education"`
	Goals        Goals        `bson:"goals" json:"goals"`
	Preferences  Preferences  `bson:"preferences" json:"preferences"`
}

type PersonalInfo struct {
	Age        string `bson:"age" json:"age"`
	Location   string `bson:"location" json:"location"`
	Occupation string `bson:"occupation" json:"occupation"`
}

type Education struct {
	Level       string `bson:"level" json:"level"`
	Field       string `bson:"field" json:"field"`
	Institution string `bson:"institution" json:"institution"`
	GPA         string `bson:"gpa" json:"gpa"`
}

type Goals struct {
	PrimaryGoal string   `bson:"primaryGoal" json:"primaryGoal"`
	Subjects    []string `bson:"subjects" json:"subjects"`
	Timeline    string   `bson:"timeline" json:"timeline"`
	Description string   `bson:"description" json:"description"`
}

type Preferences struct {
	LearningStyle  string   `bson:"learningStyle" json:"learningStyle"`
	Difficulty     string   `bson:"difficulty" json:"difficulty"`
	TimeCommitment string   `bson:"timeCommitment" json:"timeCommitment"`
	Features       []string `bson:"features" json:"features"`
}
