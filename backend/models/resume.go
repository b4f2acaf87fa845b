package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Resume is one-to-one with a user (unique index on user).
type Resume struct {
	ID             bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	User           bson.ObjectID     `bson:"user" json:"user"`
	PersonalInfo   PersonalInfo      `bson:"personalInfo" json:"personalInfo"`
	Summary        string            `bson:"summary,omitempty" json:"summary,omitempty"`
	Experience     []ExperienceEntry `bson:"experience" json:"experience"`
	Education      []EducationEntry  `bson:"education" json:"education"`
	Skills         ResumeSkills      `bson:"skills" json:"skills"`
	Projects       []Project         `bson:"projects,omitempty" json:"projects,omitempty"`
	Certifications []Certification   `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Template       string            `bson:"template" json:"template"` // default "modern"
	LastUpdated    time.Time         `bson:"lastUpdated" json:"lastUpdated"`
}

type PersonalInfo struct {
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  string `bson:"location,omitempty" json:"location,omitempty"`
	Portfolio string `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type ExperienceEntry struct {
	Company      string     `bson:"company,omitempty" json:"company,omitempty"`
	Position     string     `bson:"position,omitempty" json:"position,omitempty"`
	StartDate    *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Current      bool       `bson:"current" json:"current"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	Achievements []string   `bson:"achievements,omitempty" json:"achievements,omitempty"`
}

type EducationEntry struct {
	Institution  string     `bson:"institution,omitempty" json:"institution,omitempty"`
	Degree       string     `bson:"degree,omitempty" json:"degree,omitempty"`
	Field        string     `bson:"field,omitempty" json:"field,omitempty"`
	StartDate    *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	GPA          float64    `bson:"gpa,omitempty" json:"gpa,omitempty"`
	Achievements []string   `bson:"achievements,omitempty" json:"achievements,omitempty"`
}

type ResumeSkills struct {
	Technical []string `bson:"technical,omitempty" json:"technical,omitempty"`
	Soft      []string `bson:"soft,omitempty" json:"soft,omitempty"`
	Languages []string `bson:"languages,omitempty" json:"languages,omitempty"`
}

type Project struct {
	Name         string   `bson:"name,omitempty" json:"name,omitempty"`
	Description  string   `bson:"description,omitempty" json:"description,omitempty"`
	Technologies []string `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Link         string   `bson:"link,omitempty" json:"link,omitempty"`
}

type Certification struct {
	Name   string     `bson:"name,omitempty" json:"name,omitempty"`
	Issuer string     `bson:"issuer,omitempty" json:"issuer,omitempty"`
	Date   *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Expiry *time.Time `bson:"expiry,omitempty" json:"expiry,omitempty"`
}
