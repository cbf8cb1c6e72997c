// Package types provides type definitions for structured data used throughout the resume wizard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Domain identifies the slice of the working document a wizard step edits.
type Domain string

// Wizard domains, one per step
const (
	DomainPersonalInfo Domain = "personal_info"
	DomainExperience   Domain = "experience"
	DomainEducation    Domain = "education"
	DomainSkills       Domain = "skills"
	DomainLanguages    Domain = "languages"
	DomainCertificates Domain = "certificates"
	DomainLinks        Domain = "links"
	DomainProjects     Domain = "projects"
	DomainTemplate     Domain = "template"
	DomainReview       Domain = "review"
)

// WorkingDocument is the in-memory, UI-shaped resume draft being edited.
// Nil and empty slices are treated identically everywhere.
type WorkingDocument struct {
	PersonalInfo     *PersonalInfo     `json:"personalInfo,omitempty"`
	Experience       []ExperienceItem  `json:"experience"`
	Education        []EducationItem   `json:"education"`
	Skills           []SkillItem       `json:"skills"`
	Languages        []LanguageItem    `json:"languages"`
	Certificates     []CertificateItem `json:"certificates"`
	Links            []LinkItem        `json:"links"`
	PersonalProjects []ProjectItem     `json:"personalProjects"`
	SelectedTemplate string            `json:"selectedTemplate,omitempty"`
	ResumeName       string            `json:"resumeName,omitempty"`

	// Backend fields the wizard never shows; carried back on save untouched.
	Passthrough map[string]json.RawMessage `json:"passthrough,omitempty"`
}

// PersonalInfo holds the candidate's contact details.
type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,email"`
	Phone     string `json:"phone" validate:"notblank"`
	BirthDate string `json:"birthDate" validate:"notblank,isodate"`
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
}

// ExperienceItem is a single job or volunteering position.
type ExperienceItem struct {
	ID               string `json:"id"`
	Persisted        bool   `json:"persisted,omitempty"`
	Title            string `json:"title" validate:"notblank"`
	Company          string `json:"company" validate:"notblank"`
	SeniorityLevel   string `json:"seniorityLevel" validate:"notblank"`
	Location         string `json:"location,omitempty"`
	StartDate        string `json:"startDate" validate:"notblank,isodate"`
	EndDate          string `json:"endDate,omitempty" validate:"omitempty,isodate"`
	CurrentlyWorking *bool  `json:"currentlyWorking,omitempty"`
	Description      string `json:"description,omitempty"`
	IsVolunteering   bool   `json:"isVolunteering"`
}

// EducationItem is a single degree or course of study.
type EducationItem struct {
	ID                string `json:"id"`
	Persisted         bool   `json:"persisted,omitempty"`
	Institution       string `json:"institution" validate:"notblank"`
	Degree            string `json:"degree" validate:"notblank"`
	FieldOfStudy      string `json:"fieldOfStudy" validate:"notblank"`
	StartDate         string `json:"startDate" validate:"notblank,isodate"`
	EndDate           string `json:"endDate,omitempty" validate:"omitempty,isodate"`
	CurrentlyStudying bool   `json:"currentlyStudying"`
	Grade             string `json:"grade,omitempty"`
	Description       string `json:"description,omitempty"`
}

// SkillItem is a technical or soft skill; IsSoftSkill discriminates the two
// backend lists it is merged from.
type SkillItem struct {
	ID                string `json:"id"`
	Persisted         bool   `json:"persisted,omitempty"`
	Name              string `json:"name" validate:"notblank"`
	Level             string `json:"level,omitempty"`
	YearsOfExperience *int   `json:"yearsOfExperience,omitempty" validate:"omitempty,min=0,max=50"`
	IsSoftSkill       bool   `json:"is_soft_skill"`
}

// LanguageItem is a spoken language with a proficiency code (e.g. "B2", "native").
type LanguageItem struct {
	ID          string `json:"id"`
	Persisted   bool   `json:"persisted,omitempty"`
	Name        string `json:"name" validate:"notblank"`
	Proficiency string `json:"proficiency" validate:"notblank"`
}

// CertificateItem is a certification or license.
type CertificateItem struct {
	ID             string `json:"id"`
	Persisted      bool   `json:"persisted,omitempty"`
	Name           string `json:"name" validate:"notblank"`
	Organization   string `json:"organization" validate:"notblank"`
	IssueDate      string `json:"issueDate" validate:"notblank,isodate"`
	ExpirationDate string `json:"expirationDate,omitempty" validate:"omitempty,isodate"`
	CredentialURL  string `json:"credentialUrl,omitempty"`
}

// LinkItem is an external profile or website.
type LinkItem struct {
	ID          string `json:"id"`
	Persisted   bool   `json:"persisted,omitempty"`
	WebsiteName string `json:"websiteName" validate:"notblank"`
	URL         string `json:"url" validate:"notblank"`
}

// ProjectItem is a personal or side project.
type ProjectItem struct {
	ID          string `json:"id"`
	Persisted   bool   `json:"persisted,omitempty"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	URL         string `json:"url,omitempty"`
	StartDate   string `json:"startDate,omitempty" validate:"omitempty,isodate"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,isodate"`
}

// DocumentPatch is a partial update of a WorkingDocument. Nil fields are left
// unchanged; a non-nil slice replaces the whole list.
type DocumentPatch struct {
	PersonalInfo     *PersonalInfo      `json:"personalInfo,omitempty"`
	Experience       *[]ExperienceItem  `json:"experience,omitempty"`
	Education        *[]EducationItem   `json:"education,omitempty"`
	Skills           *[]SkillItem       `json:"skills,omitempty"`
	Languages        *[]LanguageItem    `json:"languages,omitempty"`
	Certificates     *[]CertificateItem `json:"certificates,omitempty"`
	Links            *[]LinkItem        `json:"links,omitempty"`
	PersonalProjects *[]ProjectItem     `json:"personalProjects,omitempty"`
	SelectedTemplate *string            `json:"selectedTemplate,omitempty"`
	ResumeName       *string            `json:"resumeName,omitempty"`
}

// Domains reports which wizard domains the patch touches, in no particular order.
func (p DocumentPatch) Domains() []Domain {
	var out []Domain
	if p.PersonalInfo != nil {
		out = append(out, DomainPersonalInfo)
	}
	if p.Experience != nil {
		out = append(out, DomainExperience)
	}
	if p.Education != nil {
		out = append(out, DomainEducation)
	}
	if p.Skills != nil {
		out = append(out, DomainSkills)
	}
	if p.Languages != nil {
		out = append(out, DomainLanguages)
	}
	if p.Certificates != nil {
		out = append(out, DomainCertificates)
	}
	if p.Links != nil {
		out = append(out, DomainLinks)
	}
	if p.PersonalProjects != nil {
		out = append(out, DomainProjects)
	}
	if p.SelectedTemplate != nil {
		out = append(out, DomainTemplate)
	}
	return out
}

// BoolPtr returns a pointer to b. Handy for the tri-state CurrentlyWorking flag.
func BoolPtr(b bool) *bool {
	return &b
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
