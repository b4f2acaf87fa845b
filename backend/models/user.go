package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User roles.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID              bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string          `bson:"name" json:"name"`
	Email           string          `bson:"email" json:"email"` // stored lowercase, unique index
	Password        string          `bson:"password" json:"-"`  // bcrypt hash, never serialized
	Role            string          `bson:"role" json:"role"`
	Profile         Profile         `bson:"profile" json:"profile"`
	EnrolledCourses []Enrollment    `bson:"enrolledCourses" json:"enrolledCourses"`
	SavedJobs       []bson.ObjectID `bson:"savedJobs" json:"savedJobs"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}

type Profile struct {
	Bio        string              `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills     []string            `bson:"skills,omitempty" json:"skills,omitempty"`
	Education  []ProfileEducation  `bson:"education,omitempty" json:"education,omitempty"`
	Experience []ProfileExperience `bson:"experience,omitempty" json:"experience,omitempty"`
}

type ProfileEducation struct {
	Institution string `bson:"institution,omitempty" json:"institution,omitempty"`
	Degree      string `bson:"degree,omitempty" json:"degree,omitempty"`
	Field       string `bson:"field,omitempty" json:"field,omitempty"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
}

type ProfileExperience struct {
	Company     string `bson:"company,omitempty" json:"company,omitempty"`
	Position    string `bson:"position,omitempty" json:"position,omitempty"`
	Duration    string `bson:"duration,omitempty" json:"duration,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Enrollment links a user to a course and tracks completion progress.
type Enrollment struct {
	Course    bson.ObjectID `bson:"course" json:"course"`
	Progress  int           `bson:"progress" json:"progress"` // percent, 0-100
	Completed bool          `bson:"completed" json:"completed"`
}

// PublicUser is the representation returned by auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
