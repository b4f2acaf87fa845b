package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job types.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

// Job experience levels.
var JobExperienceLevels = []string{"Entry Level", "Mid Level", "Senior Level"}

// Job categories.
var JobCategories = []string{
	"AI & Machine Learning",
	"Data Science",
	"Software Development",
	"Cybersecurity",
	"Web3 & Blockchain",
}

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func ValidJobType(t string) bool            { return contains(JobTypes, t) }
func ValidJobExperience(e string) bool      { return contains(JobExperienceLevels, e) }
func ValidJobCategory(category string) bool { return contains(JobCategories, category) }

type Job struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string        `bson:"title" json:"title"`
	Company      string        `bson:"company" json:"company"`
	Type         string        `bson:"type" json:"type"`
	Location     string        `bson:"location" json:"location"`
	Salary       Salary        `bson:"salary" json:"salary"`
	Experience   string        `bson:"experience" json:"experience"`
	Description  string        `bson:"description" json:"description"`
	Requirements []string      `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Skills       []string      `bson:"skills,omitempty" json:"skills,omitempty"`
	Category     string        `bson:"category" json:"category"`
	Applications []Application `bson:"applications" json:"applications"`
	PostedBy     bson.ObjectID `bson:"postedBy,omitempty" json:"postedBy,omitempty"`
	ExpiresAt    time.Time     `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"` // TTL index, store purges past this
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}

type Salary struct {
	Min      int    `bson:"min,omitempty" json:"min,omitempty"`
	Max      int    `bson:"max,omitempty" json:"max,omitempty"`
	Currency string `bson:"currency" json:"currency"` // default USD
}

// Application is a user's submitted interest in a job posting.
type Application struct {
	User      bson.ObjectID `bson:"user" json:"user"`
	AppliedAt time.Time     `bson:"appliedAt" json:"appliedAt"`
	Status    string        `bson:"status" json:"status"`
}

// JobPoster is the postedBy reference expanded to public fields only.
type JobPoster struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListedJob is a job as returned by the list endpoint, with the poster expanded.
type ListedJob struct {
	Job
	Poster *JobPoster `json:"postedByUser,omitempty"`
}
