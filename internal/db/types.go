package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreatedAt records when an interview was created: the calendar date plus a
// pre-formatted time-of-day string shown verbatim in listings.
type CreatedAt struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

// BaseInterview holds the user-supplied fields of an interview record.
type BaseInterview struct {
	JobTitle       string    `json:"job_title"`
	Company        string    `json:"company"`
	JobDescription string    `json:"job_description"`
	CreatedAt      CreatedAt `json:"created_at"`
}

// Interview is a stored interview record. The ID is assigned by the store on
// creation and never reused.
type Interview struct {
	ID uuid.UUID `json:"id"`
	BaseInterview
}

// ResumeExperience is one entry in the resume's experience list. The ID is
// client-generated and stable across edits within a session.
type ResumeExperience struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

// ExperienceList is an ordered sequence of experience entries stored as JSONB.
type ExperienceList []ResumeExperience

// Scan implements the Scanner interface for ExperienceList
func (l *ExperienceList) Scan(src interface{}) error {
	if src == nil {
		*l = ExperienceList{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return errors.New("unsupported source type for ExperienceList")
	}
	return json.Unmarshal(source, l)
}

// Value implements the Valuer interface for ExperienceList
func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Compact returns the entries that carry content: an entry survives a save
// only if its position or description is non-blank.
func (l ExperienceList) Compact() ExperienceList {
	kept := make(ExperienceList, 0, len(l))
	for _, exp := range l {
		if strings.TrimSpace(exp.Position) == "" && strings.TrimSpace(exp.Description) == "" {
			continue
		}
		kept = append(kept, exp)
	}
	return kept
}

// Resume is the single resume document for a user. Its ID equals the owning
// user's ID; sections are independently updatable.
type Resume struct {
	ID         uuid.UUID      `json:"id"`
	Skills     string         `json:"skills"`
	Projects   string         `json:"projects"`
	Other      string         `json:"other"`
	Experience ExperienceList `json:"experience"`
}

// NewResume returns the zero-valued resume for a user that has not saved one yet.
func NewResume(userID uuid.UUID) *Resume {
	return &Resume{
		ID:         userID,
		Experience: ExperienceList{},
	}
}

// Resume section names accepted by UpdateResumeSection.
const (
	SectionSkills   = "skills"
	SectionProjects = "projects"
	SectionOther    = "other"
)

// ValidSection reports whether name is one of the editable resume sections.
func ValidSection(name string) bool {
	switch name {
	case SectionSkills, SectionProjects, SectionOther:
		return true
	}
	return false
}

// SectionError records a failed write for one part of a resume save.
type SectionError struct {
	Section string `json:"section"`
	Err     error  `json:"-"`
}

// Message returns the underlying error text for API responses.
func (e SectionError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
