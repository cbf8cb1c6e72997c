package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/fixtures"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

func TestValidateAll_ValidDocument(t *testing.T) {
	doc := fixtures.ValidDocument()

	result := ValidateAll(&doc)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Violations)
}

func TestValidateAll_EmptyDocument(t *testing.T) {
	result := ValidateAll(&types.WorkingDocument{})

	require.False(t, result.IsValid)
	assert.Len(t, result.Errors, len(result.Violations))

	// First five messages are the required personal fields, in field order
	require.GreaterOrEqual(t, len(result.Errors), 5)
	assert.Equal(t, []string{
		"Personal info: first name is required",
		"Personal info: last name is required",
		"Personal info: email is required",
		"Personal info: phone is required",
		"Personal info: birth date is required",
	}, result.Errors[:5])

	assert.Contains(t, result.Errors, "Experience: at least one entry is required")
	assert.Contains(t, result.Errors, "Education: at least one entry is required")
	assert.Contains(t, result.Errors, "Skills: at least one entry is required")
	assert.Contains(t, result.Errors, "Languages: at least one entry is required")
	assert.Contains(t, result.Errors, "Template: a template must be selected")
}

func TestValidateAll_NilDocument(t *testing.T) {
	result := ValidateAll(nil)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateAll_OrderFollowsRegistry(t *testing.T) {
	result := ValidateAll(&types.WorkingDocument{})

	last := -1
	for _, v := range result.Violations {
		assert.GreaterOrEqual(t, v.Step, last, "violation %q out of step order", v.Message)
		last = v.Step
	}
}

func TestValidateAll_OnlyTemplateMissing(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.SelectedTemplate = "  "

	result := ValidateAll(&doc)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, steps.Template, result.Violations[0].Step)
	assert.Equal(t, types.DomainTemplate, result.Violations[0].Domain)
	assert.Equal(t, "selectedTemplate", result.Violations[0].Field)
}

func TestValidatePersonalInfo_WhitespaceCountsAsMissing(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.PersonalInfo.FirstName = "   "
	doc.PersonalInfo.Email = "\t"

	vs := ValidatePersonalInfo(&doc)

	require.Len(t, vs, 2)
	assert.Equal(t, "Personal info: first name is required", vs[0].Message)
	assert.Equal(t, "personalInfo.firstName", vs[0].Field)
	assert.Equal(t, "Personal info: email is required", vs[1].Message)
	for _, v := range vs {
		assert.Equal(t, steps.PersonalInfo, v.Step)
		assert.Equal(t, types.SourceLocal, v.Source)
	}
}

func TestValidatePersonalInfo_BadBirthDate(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.PersonalInfo.BirthDate = "10/12/1990"

	vs := ValidatePersonalInfo(&doc)

	require.Len(t, vs, 1)
	assert.Equal(t, "Personal info: birth date must be a valid date (YYYY-MM-DD)", vs[0].Message)
}

func TestValidateExperience(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ExperienceItem)
		want   []string
	}{
		{
			name:   "valid current job",
			mutate: func(*types.ExperienceItem) {},
			want:   nil,
		},
		{
			name: "missing company and seniority",
			mutate: func(e *types.ExperienceItem) {
				e.Company = ""
				e.SeniorityLevel = " "
			},
			want: []string{
				"Experience #1: company is required",
				"Experience #1: seniority level is required",
			},
		},
		{
			name: "undecided currently working",
			mutate: func(e *types.ExperienceItem) {
				e.CurrentlyWorking = nil
			},
			want: []string{"Experience #1: specify whether you currently work here"},
		},
		{
			name: "finished job without end date",
			mutate: func(e *types.ExperienceItem) {
				e.CurrentlyWorking = types.BoolPtr(false)
				e.EndDate = ""
			},
			want: []string{"Experience #1: end date is required"},
		},
		{
			name: "current job needs no end date",
			mutate: func(e *types.ExperienceItem) {
				e.CurrentlyWorking = types.BoolPtr(true)
				e.EndDate = ""
			},
			want: nil,
		},
		{
			name: "missing start date",
			mutate: func(e *types.ExperienceItem) {
				e.StartDate = ""
			},
			want: []string{"Experience #1: start date is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fixtures.ValidDocument()
			doc.Experience = doc.Experience[:1]
			tt.mutate(&doc.Experience[0])

			vs := ValidateExperience(&doc)
			assert.Equal(t, tt.want, nilIfEmpty(types.Messages(vs)))
		})
	}
}

func TestValidateExperience_Empty(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Experience = []types.ExperienceItem{}

	vs := ValidateExperience(&doc)

	require.Len(t, vs, 1)
	assert.Equal(t, "Experience: at least one entry is required", vs[0].Message)
	assert.Equal(t, steps.Experience, vs[0].Step)
}

func TestValidateExperience_DocumentOrder(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Experience[0].Title = ""
	doc.Experience[1].Company = ""

	vs := ValidateExperience(&doc)

	require.Len(t, vs, 2)
	assert.Equal(t, "Experience #1: title is required", vs[0].Message)
	assert.Equal(t, "experience[0].title", vs[0].Field)
	assert.Equal(t, "Experience #2: company is required", vs[1].Message)
	assert.Equal(t, "experience[1].company", vs[1].Field)
}

func TestValidateEducation(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Education[0].EndDate = ""
	doc.Education[0].Degree = ""

	vs := ValidateEducation(&doc)
	assert.Equal(t, []string{
		"Education #1: degree is required",
		"Education #1: end date is required",
	}, types.Messages(vs))

	doc.Education[0].CurrentlyStudying = true
	vs = ValidateEducation(&doc)
	assert.Equal(t, []string{"Education #1: degree is required"}, types.Messages(vs))
}

func TestValidateSkills_YearsOfExperienceRange(t *testing.T) {
	doc := fixtures.ValidDocument()

	doc.Skills[0].YearsOfExperience = types.IntPtr(51)
	vs := ValidateSkills(&doc)
	require.Len(t, vs, 1)
	assert.Equal(t, "Skill #1: years of experience must be at most 50", vs[0].Message)

	doc.Skills[0].YearsOfExperience = types.IntPtr(-1)
	vs = ValidateSkills(&doc)
	require.Len(t, vs, 1)
	assert.Equal(t, "Skill #1: years of experience must be at least 0", vs[0].Message)

	doc.Skills[0].YearsOfExperience = types.IntPtr(0)
	assert.Empty(t, ValidateSkills(&doc))

	doc.Skills[0].YearsOfExperience = types.IntPtr(50)
	assert.Empty(t, ValidateSkills(&doc))
}

func TestValidateSkills_BlankName(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Skills[1].Name = " "

	vs := ValidateSkills(&doc)

	require.Len(t, vs, 1)
	assert.Equal(t, "Skill #2: name is required", vs[0].Message)
}

func TestValidateLanguages(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Languages = append(doc.Languages, types.LanguageItem{ID: "l2", Name: "French"})

	vs := ValidateLanguages(&doc)

	require.Len(t, vs, 1)
	assert.Equal(t, "Language #2: proficiency is required", vs[0].Message)
}

func TestOptionalSections(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Certificates = nil
	doc.Links = nil
	doc.PersonalProjects = nil

	assert.Empty(t, ValidateCertificates(&doc))
	assert.Empty(t, ValidateLinks(&doc))
	assert.Empty(t, ValidateProjects(&doc))

	doc.Certificates = []types.CertificateItem{{ID: "c"}}
	doc.Links = []types.LinkItem{{ID: "l", WebsiteName: "Blog"}}
	doc.PersonalProjects = []types.ProjectItem{{ID: "p", Title: "Thing"}}

	assert.Equal(t, []string{
		"Certificate #1: name is required",
		"Certificate #1: organization is required",
		"Certificate #1: issue date is required",
	}, types.Messages(ValidateCertificates(&doc)))
	assert.Equal(t, []string{"Link #1: URL is required"}, types.Messages(ValidateLinks(&doc)))
	assert.Equal(t, []string{"Project #1: description is required"}, types.Messages(ValidateProjects(&doc)))
}

// Removing any required field must produce a message that names it, tagged
// with the step that edits it.
func TestValidateAll_Totality(t *testing.T) {
	tests := []struct {
		field  string
		step   int
		mutate func(*types.WorkingDocument)
	}{
		{"first name", steps.PersonalInfo, func(d *types.WorkingDocument) { d.PersonalInfo.FirstName = "" }},
		{"last name", steps.PersonalInfo, func(d *types.WorkingDocument) { d.PersonalInfo.LastName = "" }},
		{"email", steps.PersonalInfo, func(d *types.WorkingDocument) { d.PersonalInfo.Email = "" }},
		{"phone", steps.PersonalInfo, func(d *types.WorkingDocument) { d.PersonalInfo.Phone = "" }},
		{"birth date", steps.PersonalInfo, func(d *types.WorkingDocument) { d.PersonalInfo.BirthDate = "" }},
		{"title", steps.Experience, func(d *types.WorkingDocument) { d.Experience[0].Title = "" }},
		{"company", steps.Experience, func(d *types.WorkingDocument) { d.Experience[0].Company = "" }},
		{"seniority level", steps.Experience, func(d *types.WorkingDocument) { d.Experience[0].SeniorityLevel = "" }},
		{"start date", steps.Experience, func(d *types.WorkingDocument) { d.Experience[0].StartDate = "" }},
		{"end date", steps.Experience, func(d *types.WorkingDocument) { d.Experience[1].EndDate = "" }},
		{"institution", steps.Education, func(d *types.WorkingDocument) { d.Education[0].Institution = "" }},
		{"degree", steps.Education, func(d *types.WorkingDocument) { d.Education[0].Degree = "" }},
		{"field of study", steps.Education, func(d *types.WorkingDocument) { d.Education[0].FieldOfStudy = "" }},
		{"name", steps.Skills, func(d *types.WorkingDocument) { d.Skills[0].Name = "" }},
		{"proficiency", steps.Languages, func(d *types.WorkingDocument) { d.Languages[0].Proficiency = "" }},
		{"organization", steps.Certificates, func(d *types.WorkingDocument) { d.Certificates[0].Organization = "" }},
		{"URL", steps.Links, func(d *types.WorkingDocument) { d.Links[0].URL = "" }},
		{"description", steps.Projects, func(d *types.WorkingDocument) { d.PersonalProjects[0].Description = "" }},
		{"template", steps.Template, func(d *types.WorkingDocument) { d.SelectedTemplate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			doc := fixtures.ValidDocument()
			tt.mutate(&doc)

			result := ValidateAll(&doc)
			require.False(t, result.IsValid)

			found := false
			for _, v := range result.Violations {
				if v.Step == tt.step && strings.Contains(v.Message, tt.field) {
					found = true
				}
			}
			assert.True(t, found, "no violation naming %q on step %d in %v", tt.field, tt.step, result.Errors)
		})
	}
}

func TestValidateDomain_Review(t *testing.T) {
	assert.Nil(t, ValidateDomain(types.DomainReview, &types.WorkingDocument{}))
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestReportByStep(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.SelectedTemplate = ""
	doc.Experience[0].Company = ""

	report := ValidateAll(&doc).ReportByStep()

	require.Len(t, report, steps.Count())
	for i, rep := range report {
		assert.Equal(t, i, rep.Ordinal)
	}
	assert.Len(t, report[steps.Experience].Messages, 1)
	assert.Len(t, report[steps.Template].Messages, 1)
	assert.Empty(t, report[steps.PersonalInfo].Messages)
	assert.Empty(t, report[steps.Review].Messages)
}

func TestValidateStep(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.Skills[0].Name = " "

	vs, err := ValidateStep(steps.Skills, &doc)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, steps.Skills, vs[0].Step)

	vs, err = ValidateStep(steps.Experience, &doc)
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestValidateStep_UnknownOrdinal(t *testing.T) {
	_, err := ValidateStep(42, &types.WorkingDocument{})

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	var stepErr *steps.UnknownStepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Contains(t, err.Error(), "validation error: cannot validate step")
}

func TestValidatePersonalInfo_EmailFormat(t *testing.T) {
	doc := fixtures.ValidDocument()
	doc.PersonalInfo.Email = "ada.example.com"

	vs := ValidatePersonalInfo(&doc)

	require.Len(t, vs, 1)
	assert.Equal(t, "Personal info: email must be a valid email address", vs[0].Message)
	assert.Equal(t, steps.PersonalInfo, vs[0].Step)
}
