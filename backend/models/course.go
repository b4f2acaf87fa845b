package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Course categories.
var CourseCategories = []string{
	"AI & Machine Learning",
	"Metaverse Development",
	"Data Science",
	"Web3 & Blockchain",
	"Cybersecurity",
	"AR/VR Development",
	"Quantum Computing",
}

// Course levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

func ValidCourseCategory(category string) bool {
	for _, c := range CourseCategories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidCourseLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID               bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	Title            string           `bson:"title" json:"title"`
	Description      string           `bson:"description" json:"description"`
	Category         string           `bson:"category" json:"category"`
	Level            string           `bson:"level" json:"level"`
	Duration         string           `bson:"duration" json:"duration"`
	Price            float64          `bson:"price" json:"price"`
	Instructor       Instructor       `bson:"instructor" json:"instructor"`
	Curriculum       []CurriculumWeek `bson:"curriculum" json:"curriculum"`
	StudentsEnrolled int              `bson:"studentsEnrolled" json:"studentsEnrolled"`
	Rating           Rating           `bson:"rating" json:"rating"`
	Image            string           `bson:"image,omitempty" json:"image,omitempty"`
	Featured         bool             `bson:"featured" json:"featured"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
}

type Instructor struct {
	Name      string   `bson:"name,omitempty" json:"name,omitempty"`
	Bio       string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Expertise []string `bson:"expertise,omitempty" json:"expertise,omitempty"`
}

type CurriculumWeek struct {
	Week      int            `bson:"week" json:"week"`
	Title     string         `bson:"title" json:"title"`
	Topics    []string       `bson:"topics,omitempty" json:"topics,omitempty"`
	Resources []WeekResource `bson:"resources,omitempty" json:"resources,omitempty"`
}

type WeekResource struct {
	Type string `bson:"type,omitempty" json:"type,omitempty"`
	URL  string `bson:"url,omitempty" json:"url,omitempty"`
}

type Rating struct {
	Average float64 `bson:"average" json:"average"` // 0-5
	Count   int     `bson:"count" json:"count"`
}

// EnrolledCourse pairs an enrollment record with its expanded course document.
type EnrolledCourse struct {
	Course    *Course `json:"course"`
	Progress  int     `json:"progress"`
	Completed bool    `json:"completed"`
}
