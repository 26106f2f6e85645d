package db

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceList_Compact(t *testing.T) {
	list := ExperienceList{
		{ID: "a", Position: "Intern", Description: "Wrote tests"},
		{ID: "b", Position: "", Description: ""},
		{ID: "c", Position: "   ", Description: "\t"},
		{ID: "d", Position: "", Description: "Kept: has description"},
		{ID: "e", Position: "Kept: has position", Description: ""},
	}

	kept := list.Compact()

	require.Len(t, kept, 3)
	assert.Equal(t, "a", kept[0].ID)
	assert.Equal(t, "d", kept[1].ID)
	assert.Equal(t, "e", kept[2].ID)
}

func TestExperienceList_Compact_Empty(t *testing.T) {
	assert.Empty(t, ExperienceList{}.Compact())
	assert.Empty(t, ExperienceList(nil).Compact())
}

func TestExperienceList_Compact_PreservesOrder(t *testing.T) {
	list := ExperienceList{
		{ID: "3", Position: "Senior"},
		{ID: "1", Position: "Junior"},
		{ID: "2", Position: "Mid"},
	}

	kept := list.Compact()

	require.Len(t, kept, 3)
	assert.Equal(t, "3", kept[0].ID)
	assert.Equal(t, "1", kept[1].ID)
	assert.Equal(t, "2", kept[2].ID)
}

func TestExperienceList_Value(t *testing.T) {
	list := ExperienceList{{ID: "x", Position: "Engineer", Description: "Built APIs"}}

	val, err := list.Value()
	require.NoError(t, err)

	var decoded ExperienceList
	require.NoError(t, json.Unmarshal(val.([]byte), &decoded))
	assert.Equal(t, list, decoded)
}

func TestExperienceList_Value_Nil(t *testing.T) {
	val, err := ExperienceList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), val)
}

func TestExperienceList_Scan(t *testing.T) {
	var list ExperienceList
	err := list.Scan([]byte(`[{"id":"1","position":"Intern","description":"Wrote tests"}]`))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Intern", list[0].Position)
}

func TestExperienceList_Scan_Nil(t *testing.T) {
	var list ExperienceList
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestNewResume_ZeroValued(t *testing.T) {
	userID := uuid.New()

	res := NewResume(userID)

	assert.Equal(t, userID, res.ID)
	assert.Equal(t, "", res.Skills)
	assert.Equal(t, "", res.Projects)
	assert.Equal(t, "", res.Other)
	assert.Empty(t, res.Experience)
	assert.NotNil(t, res.Experience)
}

func TestValidSection(t *testing.T) {
	assert.True(t, ValidSection(SectionSkills))
	assert.True(t, ValidSection(SectionProjects))
	assert.True(t, ValidSection(SectionOther))
	assert.False(t, ValidSection("experience"))
	assert.False(t, ValidSection(""))
	assert.False(t, ValidSection("skills; DROP TABLE resumes"))
}

func TestSectionError_Message(t *testing.T) {
	assert.Equal(t, "", SectionError{Section: "skills"}.Message())
	se := SectionError{Section: "skills", Err: assert.AnError}
	assert.Equal(t, assert.AnError.Error(), se.Message())
}
