// Package composer builds the chat system prompt from a user's interview and
// resume records. Building is pure: no I/O, and the same records always
// produce the same string.
package composer

import (
	"strings"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/prompts"
)

// BuildSystemPrompt renders the interview preparation system prompt, embedding
// the interview's company, job title and description together with the
// resume's sections. Fields are inserted verbatim, without truncation.
func BuildSystemPrompt(interview *db.Interview, resume *db.Resume) string {
	template := prompts.MustGet("chat.json", "interview_system")

	return prompts.Format(template, map[string]string{
		"Company":        interview.Company,
		"JobTitle":       interview.JobTitle,
		"JobDescription": interview.JobDescription,
		"Skills":         resume.Skills,
		"Projects":       resume.Projects,
		"Experience":     renderExperience(resume.Experience),
		"Other":          resume.Other,
	})
}

// DefaultPersona returns the fallback system prompt used when no interview
// context is available.
func DefaultPersona() string {
	return prompts.MustGet("chat.json", "default_persona")
}

// renderExperience joins each entry as "position: description", one per line,
// preserving insertion order.
func renderExperience(experience db.ExperienceList) string {
	lines := make([]string, 0, len(experience))
	for _, exp := range experience {
		lines = append(lines, exp.Position+": "+exp.Description)
	}
	return strings.Join(lines, "\n")
}
