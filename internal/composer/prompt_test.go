package composer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() (*db.Interview, *db.Resume) {
	interview := &db.Interview{
		ID: uuid.New(),
		BaseInterview: db.BaseInterview{
			JobTitle:       "Backend Engineer",
			Company:        "Acme",
			JobDescription: "Build APIs",
		},
	}
	resume := &db.Resume{
		ID:       uuid.New(),
		Skills:   "Go, SQL",
		Projects: "Inventory system",
		Other:    "",
		Experience: db.ExperienceList{
			{ID: "1", Position: "Intern", Description: "Wrote tests"},
		},
	}
	return interview, resume
}

func TestBuildSystemPrompt_ContainsRecordFields(t *testing.T) {
	interview, resume := sampleRecords()

	prompt := BuildSystemPrompt(interview, resume)

	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Build APIs")
	assert.Contains(t, prompt, "Go, SQL")
	assert.Contains(t, prompt, "Inventory system")
	assert.Contains(t, prompt, "Intern: Wrote tests")
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	interview, resume := sampleRecords()

	first := BuildSystemPrompt(interview, resume)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildSystemPrompt(interview, resume))
	}
}

func TestBuildSystemPrompt_EmptyExperience(t *testing.T) {
	interview, resume := sampleRecords()
	resume.Experience = db.ExperienceList{}

	prompt := BuildSystemPrompt(interview, resume)

	// The experience block is empty but surrounding template text is intact.
	assert.Contains(t, prompt, "Experience: \nOther Information:")
	assert.NotContains(t, prompt, "{{.Experience}}")
}

func TestBuildSystemPrompt_NoUnresolvedPlaceholders(t *testing.T) {
	interview, resume := sampleRecords()
	prompt := BuildSystemPrompt(interview, resume)
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildSystemPrompt_MultipleExperienceEntriesOrdered(t *testing.T) {
	interview, resume := sampleRecords()
	resume.Experience = db.ExperienceList{
		{ID: "2", Position: "SRE", Description: "Ran prod"},
		{ID: "1", Position: "Intern", Description: "Wrote tests"},
	}

	prompt := BuildSystemPrompt(interview, resume)

	assert.Contains(t, prompt, "SRE: Ran prod\nIntern: Wrote tests")
}

func TestRenderExperience(t *testing.T) {
	out := renderExperience(db.ExperienceList{
		{Position: "A", Description: "1"},
		{Position: "B", Description: "2"},
	})
	assert.Equal(t, "A: 1\nB: 2", out)

	assert.Equal(t, "", renderExperience(nil))
}

func TestDefaultPersona(t *testing.T) {
	persona := DefaultPersona()
	require.NotEmpty(t, persona)
	assert.Equal(t, "You are a helpful interview assistant.", persona)
}
