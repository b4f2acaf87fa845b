package resumetext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogniverse/backend/models"
)

func date(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFormatExperience(t *testing.T) {
	entries := []models.ExperienceEntry{
		{
			Position:     "Senior Engineer",
			Company:      "AICo",
			StartDate:    date(2020, 3, 1),
			Current:      true,
			Description:  "Led the platform team",
			Achievements: []string{"Cut deploy time in half", "Mentored four engineers"},
		},
		{
			Position:  "Engineer",
			Company:   "DataCo",
			StartDate: date(2018, 1, 15),
			EndDate:   date(2020, 2, 28),
		},
	}

	text := FormatExperience(entries)
	assert.Equal(t,
		"Senior Engineer at AICo (3/1/2020 - Present)\n"+
			"Led the platform team\n"+
			"- Cut deploy time in half\n"+
			"- Mentored four engineers\n"+
			"\n"+
			"Engineer at DataCo (1/15/2018 - 2/28/2020)",
		text)
}

func TestExperienceRoundTrip(t *testing.T) {
	original := []models.ExperienceEntry{
		{
			Position:     "Senior Engineer",
			Company:      "AICo",
			StartDate:    date(2020, 3, 1),
			Current:      true,
			Description:  "Led the platform team",
			Achievements: []string{"Cut deploy time in half", "Mentored four engineers"},
		},
		{
			Position:     "Engineer",
			Company:      "DataCo",
			StartDate:    date(2018, 1, 15),
			EndDate:      date(2020, 2, 28),
			Description:  "Built the ingestion pipeline",
			Achievements: []string{},
		},
	}

	parsed := ParseExperience(FormatExperience(original))
	require.Len(t, parsed, 2)

	for i := range original {
		assert.Equal(t, original[i].Position, parsed[i].Position)
		assert.Equal(t, original[i].Company, parsed[i].Company)
		assert.Equal(t, original[i].Description, parsed[i].Description)
		assert.Equal(t, original[i].Achievements, parsed[i].Achievements)
		assert.Equal(t, original[i].Current, parsed[i].Current)
	}

	// Dates survive when they still parse back with the display layout.
	require.NotNil(t, parsed[0].StartDate)
	assert.True(t, parsed[0].StartDate.Equal(*original[0].StartDate))
	require.NotNil(t, parsed[1].EndDate)
	assert.True(t, parsed[1].EndDate.Equal(*original[1].EndDate))
}

func TestParseExperienceWithoutDates(t *testing.T) {
	parsed := ParseExperience("Engineer at DataCo\n- Shipped the v2 API")
	require.Len(t, parsed, 1)
	assert.Equal(t, "Engineer", parsed[0].Position)
	assert.Equal(t, "DataCo", parsed[0].Company)
	assert.Nil(t, parsed[0].StartDate)
	assert.False(t, parsed[0].Current)
	assert.Equal(t, []string{"Shipped the v2 API"}, parsed[0].Achievements)
}

func TestParseExperienceHeadlineOnly(t *testing.T) {
	parsed := ParseExperience("Freelancer")
	require.Len(t, parsed, 1)
	assert.Equal(t, "Freelancer", parsed[0].Position)
	assert.Empty(t, parsed[0].Company)
}

func TestParseExperienceCompanyContainingParens(t *testing.T) {
	// A parenthesised suffix without a date separator stays part of the
	// company name.
	parsed := ParseExperience("Engineer at DataCo (Berlin)")
	require.Len(t, parsed, 1)
	assert.Equal(t, "DataCo (Berlin)", parsed[0].Company)
}

func TestParseExperienceBlankAndWindowsLineEndings(t *testing.T) {
	parsed := ParseExperience("Engineer at DataCo\r\n\r\nAnalyst at OtherCo")
	require.Len(t, parsed, 2)
	assert.Equal(t, "Engineer", parsed[0].Position)
	assert.Equal(t, "Analyst", parsed[1].Position)

	assert.Empty(t, ParseExperience("   \n\n  "))
	assert.Empty(t, ParseExperience(""))
}

func TestEducationRoundTrip(t *testing.T) {
	original := []models.EducationEntry{
		{
			Institution:  "State University",
			Degree:       "BSc",
			Field:        "Computer Science",
			GPA:          3.8,
			Achievements: []string{"Dean's list"},
		},
		{
			Institution:  "Night School",
			Degree:       "Certificate",
			Achievements: []string{},
		},
	}

	parsed := ParseEducation(FormatEducation(original))
	require.Len(t, parsed, 2)

	for i := range original {
		assert.Equal(t, original[i].Institution, parsed[i].Institution)
		assert.Equal(t, original[i].Degree, parsed[i].Degree)
		assert.Equal(t, original[i].Field, parsed[i].Field)
		assert.Equal(t, original[i].GPA, parsed[i].GPA)
		assert.Equal(t, original[i].Achievements, parsed[i].Achievements)
	}
}

func TestFormatEducation(t *testing.T) {
	text := FormatEducation([]models.EducationEntry{
		{
			Institution: "State University",
			Degree:      "BSc",
			Field:       "Computer Science",
			StartDate:   date(2014, 9, 1),
			EndDate:     date(2018, 6, 15),
			GPA:         3.8,
		},
	})
	assert.Equal(t,
		"BSc in Computer Science at State University (9/1/2014 - 6/15/2018)\nGPA: 3.8",
		text)
}

func TestParseEducationWithoutField(t *testing.T) {
	parsed := ParseEducation("Certificate at Night School")
	require.Len(t, parsed, 1)
	assert.Equal(t, "Certificate", parsed[0].Degree)
	assert.Empty(t, parsed[0].Field)
	assert.Equal(t, "Night School", parsed[0].Institution)
}

func TestParseEducationIgnoresMalformedGPA(t *testing.T) {
	parsed := ParseEducation("BSc at State University\nGPA: not-a-number")
	require.Len(t, parsed, 1)
	assert.Zero(t, parsed[0].GPA)
}

func TestStoredTextStillParses(t *testing.T) {
	// Text written by the original form, kept byte for byte.
	stored := "Product Manager at Innovate Inc (1/2/2019 - Present)\n" +
		"Owns the roadmap\n" +
		"- Launched three products\n" +
		"\n" +
		"Analyst at BigCorp (6/1/2015 - 12/31/2018)\n" +
		"- Automated weekly reporting"

	parsed := ParseExperience(stored)
	require.Len(t, parsed, 2)
	assert.Equal(t, "Product Manager", parsed[0].Position)
	assert.Equal(t, "Innovate Inc", parsed[0].Company)
	assert.True(t, parsed[0].Current)
	assert.Equal(t, "Owns the roadmap", parsed[0].Description)
	assert.Equal(t, "Analyst", parsed[1].Position)
	assert.False(t, parsed[1].Current)

	// Formatting the parsed entries reproduces the stored text.
	assert.Equal(t, stored, FormatExperience(parsed))
}
