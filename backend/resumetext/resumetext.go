// Package resumetext implements the line-oriented text form of resume
// experience and education entries, the format users edit in a plain
// textarea.
//
// Grammar (version 1):
//
//	document   = record *( blank-line record )
//	record     = headline *( body-line )
//	headline   = experience: <position> " at " <company> [ " (" <start> " - " ( <end> | "Present" ) ")" ]
//	             education:  <degree> [ " in " <field> ] " at " <institution> [ " (" <start> " - " <end> ")" ]
//	body-line  = "- " <achievement>
//	           | "GPA: " <number>            (education only)
//	           | <description>               (any other non-blank line)
//
// The form is lossy by design: dates degrade to their display strings and
// are only recovered when they still parse back with the same layout.
package resumetext

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cogniverse/backend/models"
)

// GrammarVersion identifies the delimiter grammar. Stored text written by
// earlier deployments of version 1 parses unchanged.
const GrammarVersion = 1

// dateLayout is the display form dates degrade to.
const dateLayout = "1/2/2006"

const (
	atSeparator     = " at "
	inSeparator     = " in "
	rangeSeparator  = " - "
	achievementMark = "- "
	gpaMark         = "GPA: "
	presentLabel    = "Present"
	recordSeparator = "\n\n"
)

// FormatExperience renders experience entries to the textarea form.
func FormatExperience(entries []models.ExperienceEntry) string {
	records := make([]string, 0, len(entries))
	for _, exp := range entries {
		var b strings.Builder
		b.WriteString(exp.Position)
		b.WriteString(atSeparator)
		b.WriteString(exp.Company)
		if exp.StartDate != nil {
			end := presentLabel
			if !exp.Current && exp.EndDate != nil {
				end = exp.EndDate.Format(dateLayout)
			}
			fmt.Fprintf(&b, " (%s%s%s)", exp.StartDate.Format(dateLayout), rangeSeparator, end)
		}
		if exp.Description != "" {
			b.WriteString("\n")
			b.WriteString(exp.Description)
		}
		for _, achievement := range exp.Achievements {
			b.WriteString("\n")
			b.WriteString(achievementMark)
			b.WriteString(achievement)
		}
		records = append(records, b.String())
	}
	return strings.Join(records, recordSeparator)
}

// ParseExperience parses the textarea form back into experience entries.
func ParseExperience(text string) []models.ExperienceEntry {
	entries := []models.ExperienceEntry{}
	for _, record := range splitRecords(text) {
		lines := strings.Split(record, "\n")

		entry := models.ExperienceEntry{Achievements: []string{}}
		headline, dates := splitDateRange(lines[0])

		if at := strings.Index(headline, atSeparator); at > -1 {
			entry.Position = strings.TrimSpace(headline[:at])
			entry.Company = strings.TrimSpace(headline[at+len(atSeparator):])
		} else {
			entry.Position = strings.TrimSpace(headline)
		}

		if dates != nil {
			entry.StartDate = parseDate(dates.start)
			if dates.end == presentLabel {
				entry.Current = true
			} else {
				entry.EndDate = parseDate(dates.end)
			}
		}

		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, achievementMark):
				if achievement := line[len(achievementMark):]; achievement != "" {
					entry.Achievements = append(entry.Achievements, achievement)
				}
			default:
				entry.Description = line
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

// FormatEducation renders education entries to the textarea form.
func FormatEducation(entries []models.EducationEntry) string {
	records := make([]string, 0, len(entries))
	for _, edu := range entries {
		var b strings.Builder
		b.WriteString(edu.Degree)
		if edu.Field != "" {
			b.WriteString(inSeparator)
			b.WriteString(edu.Field)
		}
		b.WriteString(atSeparator)
		b.WriteString(edu.Institution)
		if edu.StartDate != nil && edu.EndDate != nil {
			fmt.Fprintf(&b, " (%s%s%s)",
				edu.StartDate.Format(dateLayout), rangeSeparator, edu.EndDate.Format(dateLayout))
		}
		if edu.GPA > 0 {
			b.WriteString("\n")
			b.WriteString(gpaMark)
			b.WriteString(strconv.FormatFloat(edu.GPA, 'f', -1, 64))
		}
		for _, achievement := range edu.Achievements {
			b.WriteString("\n")
			b.WriteString(achievementMark)
			b.WriteString(achievement)
		}
		records = append(records, b.String())
	}
	return strings.Join(records, recordSeparator)
}

// ParseEducation parses the textarea form back into education entries.
func ParseEducation(text string) []models.EducationEntry {
	entries := []models.EducationEntry{}
	for _, record := range splitRecords(text) {
		lines := strings.Split(record, "\n")

		entry := models.EducationEntry{Achievements: []string{}}
		headline, dates := splitDateRange(lines[0])

		if at := strings.Index(headline, atSeparator); at > -1 {
			degreePart := headline[:at]
			entry.Institution = strings.TrimSpace(headline[at+len(atSeparator):])
			if in := strings.Index(degreePart, inSeparator); in > -1 {
				entry.Degree = strings.TrimSpace(degreePart[:in])
				entry.Field = strings.TrimSpace(degreePart[in+len(inSeparator):])
			} else {
				entry.Degree = strings.TrimSpace(degreePart)
			}
		} else {
			entry.Degree = strings.TrimSpace(headline)
		}

		if dates != nil {
			entry.StartDate = parseDate(dates.start)
			entry.EndDate = parseDate(dates.end)
		}

		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, gpaMark):
				if gpa, err := strconv.ParseFloat(strings.TrimSpace(line[len(gpaMark):]), 64); err == nil {
					entry.GPA = gpa
				}
			case strings.HasPrefix(line, achievementMark):
				if achievement := line[len(achievementMark):]; achievement != "" {
					entry.Achievements = append(entry.Achievements, achievement)
				}
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

func splitRecords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), recordSeparator)
	records := make([]string, 0, len(raw))
	for _, record := range raw {
		if strings.TrimSpace(record) != "" {
			records = append(records, record)
		}
	}
	return records
}

type dateRange struct {
	start string
	end   string
}

// splitDateRange strips a trailing " (<start> - <end>)" from a headline and
// returns the remainder plus the range, or nil when no range is present.
func splitDateRange(headline string) (string, *dateRange) {
	headline = strings.TrimRight(headline, " ")
	if !strings.HasSuffix(headline, ")") {
		return headline, nil
	}

	open := strings.LastIndex(headline, " (")
	if open == -1 {
		return headline, nil
	}

	inner := headline[open+2 : len(headline)-1]
	sep := strings.Index(inner, rangeSeparator)
	if sep == -1 {
		return headline, nil
	}

	return headline[:open], &dateRange{
		start: strings.TrimSpace(inner[:sep]),
		end:   strings.TrimSpace(inner[sep+len(rangeSeparator):]),
	}
}

func parseDate(s string) *time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
