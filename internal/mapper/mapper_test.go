package mapper

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/fixtures"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

func TestToWorkingDocument_MergesLists(t *testing.T) {
	doc := ToWorkingDocument(fixtures.PersistedResume())

	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "Backend Engineer", doc.Experience[0].Title)
	assert.False(t, doc.Experience[0].IsVolunteering)
	assert.Equal(t, "Mentor", doc.Experience[1].Title)
	assert.True(t, doc.Experience[1].IsVolunteering)

	require.Len(t, doc.Skills, 2)
	assert.Equal(t, "Go", doc.Skills[0].Name)
	assert.False(t, doc.Skills[0].IsSoftSkill)
	assert.Equal(t, "Communication", doc.Skills[1].Name)
	assert.True(t, doc.Skills[1].IsSoftSkill)
}

func TestToWorkingDocument_Fields(t *testing.T) {
	doc := ToWorkingDocument(fixtures.PersistedResume())

	assert.Equal(t, "modern", doc.SelectedTemplate)
	assert.Equal(t, "Backend roles", doc.ResumeName)

	require.NotNil(t, doc.PersonalInfo)
	assert.Equal(t, "+44 20 7946 0000", doc.PersonalInfo.Phone)
	assert.Equal(t, "1990-12-10", doc.PersonalInfo.BirthDate)

	exp := doc.Experience[0]
	assert.Equal(t, "11", exp.ID)
	assert.True(t, exp.Persisted)
	assert.Equal(t, "Analytical Engines Ltd", exp.Company)
	assert.Equal(t, "2019-03-01", exp.StartDate)
	require.NotNil(t, exp.CurrentlyWorking)
	assert.True(t, *exp.CurrentlyWorking)

	assert.Equal(t, "2013-06-01", doc.Education[0].EndDate)
	assert.Equal(t, "native", doc.Languages[0].Proficiency)
	assert.Equal(t, "CNCF", doc.Certificates[0].Organization)
	assert.Equal(t, "2021-04-01", doc.Certificates[0].IssueDate)
	assert.Equal(t, "https://example.com/b", doc.PersonalProjects[0].URL)
	assert.Equal(t, "2020-01-01", doc.PersonalProjects[0].StartDate)
}

func TestToWorkingDocument_Nil(t *testing.T) {
	doc := ToWorkingDocument(nil)
	assert.Nil(t, doc.PersonalInfo)
	assert.Empty(t, doc.Experience)
}

func TestToWorkingDocument_MissingIDs(t *testing.T) {
	r := &types.PersistedResume{Data: types.ResumePayload{
		Languages: []types.PersistedLanguage{{Name: "French", ProficiencyCode: "B2"}},
	}}

	doc := ToWorkingDocument(r)

	require.Len(t, doc.Languages, 1)
	assert.NotEmpty(t, doc.Languages[0].ID)
	assert.False(t, doc.Languages[0].Persisted)

	payload := ToPersistencePayload(doc)
	assert.Empty(t, payload.Languages[0].ID, "client ids are never sent")
}

func TestToWorkingDocument_IsValidWhenSourceIsComplete(t *testing.T) {
	doc := ToWorkingDocument(fixtures.PersistedResume())
	result := validation.ValidateAll(&doc)
	assert.True(t, result.IsValid, "%v", result.Errors)
}

func TestRoundTrip(t *testing.T) {
	src := fixtures.PersistedResume()

	got := ToPersistencePayload(ToWorkingDocument(src))

	assert.Equal(t, src.Data, got)
}

func TestRoundTrip_FullDatesCompact(t *testing.T) {
	src := fixtures.PersistedResume()
	src.Data.CareerExperiences[0].StartDate = "2019-03-15"

	got := ToPersistencePayload(ToWorkingDocument(src))

	assert.Equal(t, "2019-03", got.CareerExperiences[0].StartDate)
}

func TestRoundTrip_Passthrough(t *testing.T) {
	raw := []byte(`{
		"personal_info": {"first_name": "Ada"},
		"technical_skills": [{"id": "1", "name": "Go"}],
		"hobbies": ["chess", "rowing"],
		"internal_rank": 7
	}`)

	var payload types.ResumePayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Extra, 2)

	doc := ToWorkingDocument(&types.PersistedResume{Data: payload})
	assert.Len(t, doc.Passthrough, 2)

	out, err := json.Marshal(ToPersistencePayload(doc))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"personal_info": {"first_name": "Ada"},
		"technical_skills": [{"id": "1", "name": "Go"}],
		"hobbies": ["chess", "rowing"],
		"internal_rank": 7
	}`, string(out))
}

func TestToPersistencePayload_SplitsByDiscriminator(t *testing.T) {
	doc := fixtures.ValidDocument()

	payload := ToPersistencePayload(doc)

	require.Len(t, payload.CareerExperiences, 1)
	assert.Equal(t, "Backend Engineer", payload.CareerExperiences[0].JobTitle)
	require.Len(t, payload.VolunteeringExperiences, 1)
	assert.Equal(t, "Code Club", payload.VolunteeringExperiences[0].CompanyName)

	require.Len(t, payload.TechnicalSkills, 1)
	assert.Equal(t, "Go", payload.TechnicalSkills[0].Name)
	require.Len(t, payload.SoftSkills, 1)
	assert.Equal(t, "Communication", payload.SoftSkills[0].Name)
}

func TestToPersistencePayload_CleansValues(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.PersonalInfo.Summary = "   "
	doc.PersonalInfo.City = "  London "
	doc.Experience[0].Location = ""
	doc.Experience[0].Persisted = true

	payload := ToPersistencePayload(doc)

	assert.Empty(t, payload.PersonalInfo.Summary)
	assert.Equal(t, "London", payload.PersonalInfo.City)
	assert.Equal(t, "1990-12-10", payload.PersonalInfo.BirthDate, "birth date stays a full date")
	assert.Equal(t, "2019-03", payload.CareerExperiences[0].StartDate)
	assert.Equal(t, "exp-1", payload.CareerExperiences[0].ID)
	assert.Empty(t, payload.VolunteeringExperiences[0].ID)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"summary"`)
	assert.NotContains(t, string(out), `"location"`)
}

func TestToPersistencePayload_EmptyPersonalInfoDropped(t *testing.T) {
	payload := ToPersistencePayload(types.WorkingDocument{PersonalInfo: &types.PersonalInfo{FirstName: " "}})
	assert.Nil(t, payload.PersonalInfo)
}

func TestToPersistencePayload_DoesNotAlias(t *testing.T) {
	doc := fixtures.ValidDocument()
	payload := ToPersistencePayload(doc)

	*payload.CareerExperiences[0].CurrentlyWorking = false
	*payload.TechnicalSkills[0].YearsOfExperience = 1

	assert.True(t, *doc.Experience[0].CurrentlyWorking)
	assert.Equal(t, 6, *doc.Skills[0].YearsOfExperience)
}

func TestDecodePersistedResume(t *testing.T) {
	r, err := DecodePersistedResume([]byte(`{"id":"7","name":"Mine","template_id":"classic","data":{"links":[{"id":"1","website_name":"Blog","url":"https://b.example"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, "7", r.ID)
	assert.Equal(t, "classic", r.TemplateID)
	require.Len(t, r.Data.Links, 1)

	_, err = DecodePersistedResume([]byte(`{`))
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
}

func TestDecodeWorkingDocument(t *testing.T) {
	doc, err := DecodeWorkingDocument([]byte(`{"selectedTemplate":"classic","skills":[{"name":"Go","is_soft_skill":false}]}`))
	require.NoError(t, err)
	assert.Equal(t, "classic", doc.SelectedTemplate)
	require.Len(t, doc.Skills, 1)

	_, err = DecodeWorkingDocument([]byte(`[]`))
	assert.Error(t, err)
}

func TestAdoptServerIDs(t *testing.T) {
	doc := fixtures.ValidDocument()
	saved := ToPersistencePayload(doc)
	saved.CareerExperiences[0].ID = "srv-career"
	saved.VolunteeringExperiences[0].ID = "srv-volunteer"
	saved.TechnicalSkills[0].ID = "srv-tech"
	saved.SoftSkills[0].ID = "srv-soft"
	saved.Educations[0].ID = "srv-edu"
	saved.Links[0].ID = "srv-link"

	got := AdoptServerIDs(doc, saved)

	assert.Equal(t, "srv-career", got.Experience[0].ID)
	assert.True(t, got.Experience[0].Persisted)
	assert.Equal(t, "srv-volunteer", got.Experience[1].ID)
	assert.Equal(t, "srv-tech", got.Skills[0].ID)
	assert.Equal(t, "srv-soft", got.Skills[1].ID)
	assert.Equal(t, "srv-edu", got.Education[0].ID)
	assert.Equal(t, "srv-link", got.Links[0].ID)
	assert.Equal(t, "lang-1", got.Languages[0].ID, "no saved key keeps the client id")
	assert.False(t, got.Languages[0].Persisted)

	assert.Equal(t, "exp-1", doc.Experience[0].ID, "input not modified")
	assert.False(t, doc.Experience[0].Persisted)

	payload := ToPersistencePayload(got)
	assert.Equal(t, "srv-career", payload.CareerExperiences[0].ID)
	assert.Equal(t, "srv-soft", payload.SoftSkills[0].ID)
}

func TestAdoptServerIDs_LengthMismatch(t *testing.T) {
	doc := fixtures.ValidDocument()
	saved := types.ResumePayload{
		Links: []types.PersistedLink{{ID: "a"}, {ID: "b"}},
	}

	got := AdoptServerIDs(doc, saved)

	assert.Equal(t, "link-1", got.Links[0].ID)
	assert.False(t, got.Links[0].Persisted)
}
