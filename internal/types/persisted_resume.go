// Package types provides type definitions for structured data used throughout the resume wizard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// PersistedResume is a resume as the backend stores and returns it.
type PersistedResume struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	TemplateID string        `json:"template_id,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
	UpdatedAt  *time.Time    `json:"updated_at,omitempty"`
	Data       ResumePayload `json:"data"`
}

// ResumePayload is the snake_case body the backend create/update endpoints accept.
// Experience, education, project and certification dates are partial (YYYY-MM);
// birth_date is a full date.
type ResumePayload struct {
	PersonalInfo            *PersistedPersonalInfo   `json:"personal_info,omitempty"`
	CareerExperiences       []PersistedExperience    `json:"career_experiences,omitempty"`
	VolunteeringExperiences []PersistedExperience    `json:"volunteering_experiences,omitempty"`
	Educations              []PersistedEducation     `json:"educations,omitempty"`
	TechnicalSkills         []PersistedSkill         `json:"technical_skills,omitempty"`
	SoftSkills              []PersistedSkill         `json:"soft_skills,omitempty"`
	Languages               []PersistedLanguage      `json:"languages,omitempty"`
	Certifications          []PersistedCertification `json:"certifications,omitempty"`
	Links                   []PersistedLink          `json:"links,omitempty"`
	PersonalProjects        []PersistedProject       `json:"personal_projects,omitempty"`

	// Extra holds top-level keys this package does not model. They are
	// re-emitted verbatim by MarshalJSON.
	Extra map[string]json.RawMessage `json:"-"`
}

// PersistedPersonalInfo is the backend shape of PersonalInfo.
type PersistedPersonalInfo struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"`
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// PersistedExperience is shared by career_experiences and volunteering_experiences.
type PersistedExperience struct {
	ID               string `json:"id,omitempty"`
	JobTitle         string `json:"job_title,omitempty"`
	CompanyName      string `json:"company_name,omitempty"`
	SeniorityLevel   string `json:"seniority_level,omitempty"`
	Location         string `json:"location,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	CurrentlyWorking *bool  `json:"currently_working,omitempty"`
	Description      string `json:"description,omitempty"`
}

// PersistedEducation is the backend shape of EducationItem.
type PersistedEducation struct {
	ID                string `json:"id,omitempty"`
	Institution       string `json:"institution,omitempty"`
	Degree            string `json:"degree,omitempty"`
	FieldOfStudy      string `json:"field_of_study,omitempty"`
	StartDate         string `json:"start_date,omitempty"`
	EndDate           string `json:"end_date,omitempty"`
	CurrentlyStudying bool   `json:"currently_studying,omitempty"`
	Grade             string `json:"grade,omitempty"`
	Description       string `json:"description,omitempty"`
}

// PersistedSkill is shared by technical_skills and soft_skills.
type PersistedSkill struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	Level             string `json:"level,omitempty"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty"`
}

// PersistedLanguage is the backend shape of LanguageItem.
type PersistedLanguage struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	ProficiencyCode string `json:"proficiency_code,omitempty"`
}

// PersistedCertification is the backend shape of CertificateItem.
type PersistedCertification struct {
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name,omitempty"`
	IssuingOrganization string `json:"issuing_organization,omitempty"`
	IssueDate           string `json:"issue_date,omitempty"`
	ExpirationDate      string `json:"expiration_date,omitempty"`
	CredentialURL       string `json:"credential_url,omitempty"`
}

// PersistedLink is the backend shape of LinkItem.
type PersistedLink struct {
	ID          string `json:"id,omitempty"`
	WebsiteName string `json:"website_name,omitempty"`
	URL         string `json:"url,omitempty"`
}

// PersistedProject is the backend shape of ProjectItem.
type PersistedProject struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ProjectURL  string `json:"project_url,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// payloadKeys lists the top-level keys ResumePayload models itself.
var payloadKeys = []string{
	"personal_info", "career_experiences", "volunteering_experiences",
	"educations", "technical_skills", "soft_skills", "languages",
	"certifications", "links", "personal_projects",
}

// resumePayloadFields avoids MarshalJSON/UnmarshalJSON recursion.
type resumePayloadFields ResumePayload

// UnmarshalJSON decodes the modeled keys and keeps the rest in Extra.
func (p *ResumePayload) UnmarshalJSON(data []byte) error {
	var fields resumePayloadFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range payloadKeys {
		delete(raw, k)
	}

	*p = ResumePayload(fields)
	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the modeled keys and merges Extra back in. Modeled keys win.
func (p ResumePayload) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(resumePayloadFields(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+len(payloadKeys))
	for k, v := range p.Extra {
		merged[k] = v
	}
	var knownMap map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownMap); err != nil {
		return nil, fmt.Errorf("failed to merge payload extras: %w", err)
	}
	for k, v := range knownMap {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// WithItemIDs returns a copy of p in which every list item without an id gets
// one from newID. Input slices are not modified.
func (p ResumePayload) WithItemIDs(newID func() string) ResumePayload {
	key := func(id string) string {
		if id == "" {
			return newID()
		}
		return id
	}

	p.CareerExperiences = append([]PersistedExperience(nil), p.CareerExperiences...)
	for i := range p.CareerExperiences {
		p.CareerExperiences[i].ID = key(p.CareerExperiences[i].ID)
	}
	p.VolunteeringExperiences = append([]PersistedExperience(nil), p.VolunteeringExperiences...)
	for i := range p.VolunteeringExperiences {
		p.VolunteeringExperiences[i].ID = key(p.VolunteeringExperiences[i].ID)
	}
	p.Educations = append([]PersistedEducation(nil), p.Educations...)
	for i := range p.Educations {
		p.Educations[i].ID = key(p.Educations[i].ID)
	}
	p.TechnicalSkills = append([]PersistedSkill(nil), p.TechnicalSkills...)
	for i := range p.TechnicalSkills {
		p.TechnicalSkills[i].ID = key(p.TechnicalSkills[i].ID)
	}
	p.SoftSkills = append([]PersistedSkill(nil), p.SoftSkills...)
	for i := range p.SoftSkills {
		p.SoftSkills[i].ID = key(p.SoftSkills[i].ID)
	}
	p.Languages = append([]PersistedLanguage(nil), p.Languages...)
	for i := range p.Languages {
		p.Languages[i].ID = key(p.Languages[i].ID)
	}
	p.Certifications = append([]PersistedCertification(nil), p.Certifications...)
	for i := range p.Certifications {
		p.Certifications[i].ID = key(p.Certifications[i].ID)
	}
	p.Links = append([]PersistedLink(nil), p.Links...)
	for i := range p.Links {
		p.Links[i].ID = key(p.Links[i].ID)
	}
	p.PersonalProjects = append([]PersistedProject(nil), p.PersonalProjects...)
	for i := range p.PersonalProjects {
		p.PersonalProjects[i].ID = key(p.PersonalProjects[i].ID)
	}
	return p
}
