package validation

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/types"
)

// DomainValidator turns the working document into the violations of one domain.
// Implementations are pure and report violations in document order, then field order.
type DomainValidator func(doc *types.WorkingDocument) []types.Violation

// validators is keyed by the domain each wizard step edits. The review step has none.
var validators = map[types.Domain]DomainValidator{
	types.DomainPersonalInfo: ValidatePersonalInfo,
	types.DomainExperience:   ValidateExperience,
	types.DomainEducation:    ValidateEducation,
	types.DomainSkills:       ValidateSkills,
	types.DomainLanguages:    ValidateLanguages,
	types.DomainCertificates: ValidateCertificates,
	types.DomainLinks:        ValidateLinks,
	types.DomainProjects:     ValidateProjects,
	types.DomainTemplate:     ValidateTemplate,
}

// ValidatorFor returns the validator of a domain, if it has one.
func ValidatorFor(domain types.Domain) (DomainValidator, bool) {
	v, ok := validators[domain]
	return v, ok
}

// ValidatePersonalInfo requires first name, last name, email, phone and birth date.
func ValidatePersonalInfo(doc *types.WorkingDocument) []types.Violation {
	info := types.PersonalInfo{}
	if doc != nil && doc.PersonalInfo != nil {
		info = *doc.PersonalInfo
	}
	return checkStruct(types.DomainPersonalInfo, "Personal info", "personalInfo", &info)
}

// ValidateExperience requires at least one entry. Each entry needs title, company,
// seniority level, start date, an explicit currently-working decision and, unless
// currently working, an end date.
func ValidateExperience(doc *types.WorkingDocument) []types.Violation {
	if doc == nil || len(doc.Experience) == 0 {
		return []types.Violation{atLeastOne(types.DomainExperience, "Experience", "experience")}
	}

	var out []types.Violation
	for i := range doc.Experience {
		item := &doc.Experience[i]
		prefix := fmt.Sprintf("Experience #%d", i+1)
		path := fmt.Sprintf("experience[%d]", i)

		out = append(out, checkStruct(types.DomainExperience, prefix, path, item)...)

		switch {
		case item.CurrentlyWorking == nil:
			out = append(out, newViolation(types.DomainExperience, path+".currentlyWorking",
				prefix+": specify whether you currently work here"))
		case !*item.CurrentlyWorking && isBlank(item.EndDate):
			out = append(out, newViolation(types.DomainExperience, path+".endDate",
				prefix+": end date is required"))
		}
	}
	return out
}

// ValidateEducation requires at least one entry with institution, degree, field of
// study and start date; end date unless currently studying.
func ValidateEducation(doc *types.WorkingDocument) []types.Violation {
	if doc == nil || len(doc.Education) == 0 {
		return []types.Violation{atLeastOne(types.DomainEducation, "Education", "education")}
	}

	var out []types.Violation
	for i := range doc.Education {
		item := &doc.Education[i]
		prefix := fmt.Sprintf("Education #%d", i+1)
		path := fmt.Sprintf("education[%d]", i)

		out = append(out, checkStruct(types.DomainEducation, prefix, path, item)...)
		if !item.CurrentlyStudying && isBlank(item.EndDate) {
			out = append(out, newViolation(types.DomainEducation, path+".endDate",
				prefix+": end date is required"))
		}
	}
	return out
}

// ValidateSkills requires at least one named skill.
func ValidateSkills(doc *types.WorkingDocument) []types.Violation {
	if doc == nil || len(doc.Skills) == 0 {
		return []types.Violation{atLeastOne(types.DomainSkills, "Skills", "skills")}
	}

	var out []types.Violation
	for i := range doc.Skills {
		out = append(out, checkStruct(types.DomainSkills,
			fmt.Sprintf("Skill #%d", i+1), fmt.Sprintf("skills[%d]", i), &doc.Skills[i])...)
	}
	return out
}

// ValidateLanguages requires at least one language with name and proficiency.
func ValidateLanguages(doc *types.WorkingDocument) []types.Violation {
	if doc == nil || len(doc.Languages) == 0 {
		return []types.Violation{atLeastOne(types.DomainLanguages, "Languages", "languages")}
	}

	var out []types.Violation
	for i := range doc.Languages {
		out = append(out, checkStruct(types.DomainLanguages,
			fmt.Sprintf("Language #%d", i+1), fmt.Sprintf("languages[%d]", i), &doc.Languages[i])...)
	}
	return out
}

// ValidateCertificates checks entries only; the section itself is optional.
func ValidateCertificates(doc *types.WorkingDocument) []types.Violation {
	if doc == nil {
		return nil
	}
	var out []types.Violation
	for i := range doc.Certificates {
		out = append(out, checkStruct(types.DomainCertificates,
			fmt.Sprintf("Certificate #%d", i+1), fmt.Sprintf("certificates[%d]", i), &doc.Certificates[i])...)
	}
	return out
}

// ValidateLinks checks entries only; the section itself is optional.
func ValidateLinks(doc *types.WorkingDocument) []types.Violation {
	if doc == nil {
		return nil
	}
	var out []types.Violation
	for i := range doc.Links {
		out = append(out, checkStruct(types.DomainLinks,
			fmt.Sprintf("Link #%d", i+1), fmt.Sprintf("links[%d]", i), &doc.Links[i])...)
	}
	return out
}

// ValidateProjects checks entries only; the section itself is optional.
func ValidateProjects(doc *types.WorkingDocument) []types.Violation {
	if doc == nil {
		return nil
	}
	var out []types.Violation
	for i := range doc.PersonalProjects {
		out = append(out, checkStruct(types.DomainProjects,
			fmt.Sprintf("Project #%d", i+1), fmt.Sprintf("personalProjects[%d]", i), &doc.PersonalProjects[i])...)
	}
	return out
}

// ValidateTemplate requires a selected template.
func ValidateTemplate(doc *types.WorkingDocument) []types.Violation {
	if doc != nil && !isBlank(doc.SelectedTemplate) {
		return nil
	}
	return []types.Violation{newViolation(types.DomainTemplate, "selectedTemplate",
		"Template: a template must be selected")}
}

func atLeastOne(domain types.Domain, section, path string) types.Violation {
	return newViolation(domain, path, section+": at least one entry is required")
}
