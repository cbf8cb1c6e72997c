package mapper

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/types"
)

// ToWorkingDocument hydrates a working document from a persisted resume.
// Career and volunteering experience are merged into one list (career first),
// as are technical and soft skills (technical first). Partial dates become
// full dates. A nil resume yields an empty document.
func ToWorkingDocument(r *types.PersistedResume) types.WorkingDocument {
	if r == nil {
		return types.WorkingDocument{}
	}
	data := r.Data

	doc := types.WorkingDocument{
		SelectedTemplate: r.TemplateID,
		ResumeName:       r.Name,
		Passthrough:      copyRaw(data.Extra),
	}

	if p := data.PersonalInfo; p != nil {
		doc.PersonalInfo = &types.PersonalInfo{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.PhoneNumber,
			BirthDate: ExpandDate(p.BirthDate),
			Title:     p.Title,
			Summary:   p.Summary,
			City:      p.City,
			Country:   p.Country,
		}
	}

	for _, e := range data.CareerExperiences {
		doc.Experience = append(doc.Experience, experienceFromPersisted(e, false))
	}
	for _, e := range data.VolunteeringExperiences {
		doc.Experience = append(doc.Experience, experienceFromPersisted(e, true))
	}

	for _, e := range data.Educations {
		id, persisted := itemID(e.ID)
		doc.Education = append(doc.Education, types.EducationItem{
			ID:                id,
			Persisted:         persisted,
			Institution:       e.Institution,
			Degree:            e.Degree,
			FieldOfStudy:      e.FieldOfStudy,
			StartDate:         ExpandDate(e.StartDate),
			EndDate:           ExpandDate(e.EndDate),
			CurrentlyStudying: e.CurrentlyStudying,
			Grade:             e.Grade,
			Description:       e.Description,
		})
	}

	for _, s := range data.TechnicalSkills {
		doc.Skills = append(doc.Skills, skillFromPersisted(s, false))
	}
	for _, s := range data.SoftSkills {
		doc.Skills = append(doc.Skills, skillFromPersisted(s, true))
	}

	for _, l := range data.Languages {
		id, persisted := itemID(l.ID)
		doc.Languages = append(doc.Languages, types.LanguageItem{
			ID:          id,
			Persisted:   persisted,
			Name:        l.Name,
			Proficiency: l.ProficiencyCode,
		})
	}

	for _, c := range data.Certifications {
		id, persisted := itemID(c.ID)
		doc.Certificates = append(doc.Certificates, types.CertificateItem{
			ID:             id,
			Persisted:      persisted,
			Name:           c.Name,
			Organization:   c.IssuingOrganization,
			IssueDate:      ExpandDate(c.IssueDate),
			ExpirationDate: ExpandDate(c.ExpirationDate),
			CredentialURL:  c.CredentialURL,
		})
	}

	for _, l := range data.Links {
		id, persisted := itemID(l.ID)
		doc.Links = append(doc.Links, types.LinkItem{
			ID:          id,
			Persisted:   persisted,
			WebsiteName: l.WebsiteName,
			URL:         l.URL,
		})
	}

	for _, p := range data.PersonalProjects {
		id, persisted := itemID(p.ID)
		doc.PersonalProjects = append(doc.PersonalProjects, types.ProjectItem{
			ID:          id,
			Persisted:   persisted,
			Title:       p.Title,
			Description: p.Description,
			URL:         p.ProjectURL,
			StartDate:   ExpandDate(p.StartDate),
			EndDate:     ExpandDate(p.EndDate),
		})
	}

	return doc
}

// ToPersistencePayload builds the create/update body for a working document.
// Merged lists are split back by their discriminator, dates other than the
// birth date are sent as YYYY-MM, strings are trimmed and empty optional values
// are dropped. Item IDs are sent only for items the backend already knows.
func ToPersistencePayload(doc types.WorkingDocument) types.ResumePayload {
	payload := types.ResumePayload{
		Extra: copyRaw(doc.Passthrough),
	}

	if p := doc.PersonalInfo; p != nil {
		info := types.PersistedPersonalInfo{
			FirstName:   clean(p.FirstName),
			LastName:    clean(p.LastName),
			Email:       clean(p.Email),
			PhoneNumber: clean(p.Phone),
			BirthDate:   clean(p.BirthDate),
			Title:       clean(p.Title),
			Summary:     clean(p.Summary),
			City:        clean(p.City),
			Country:     clean(p.Country),
		}
		if info != (types.PersistedPersonalInfo{}) {
			payload.PersonalInfo = &info
		}
	}

	for _, e := range doc.Experience {
		pe := types.PersistedExperience{
			ID:               persistedID(e.ID, e.Persisted),
			JobTitle:         clean(e.Title),
			CompanyName:      clean(e.Company),
			SeniorityLevel:   clean(e.SeniorityLevel),
			Location:         clean(e.Location),
			StartDate:        CompactDate(e.StartDate),
			EndDate:          CompactDate(e.EndDate),
			CurrentlyWorking: copyBool(e.CurrentlyWorking),
			Description:      clean(e.Description),
		}
		if e.IsVolunteering {
			payload.VolunteeringExperiences = append(payload.VolunteeringExperiences, pe)
		} else {
			payload.CareerExperiences = append(payload.CareerExperiences, pe)
		}
	}

	for _, e := range doc.Education {
		payload.Educations = append(payload.Educations, types.PersistedEducation{
			ID:                persistedID(e.ID, e.Persisted),
			Institution:       clean(e.Institution),
			Degree:            clean(e.Degree),
			FieldOfStudy:      clean(e.FieldOfStudy),
			StartDate:         CompactDate(e.StartDate),
			EndDate:           CompactDate(e.EndDate),
			CurrentlyStudying: e.CurrentlyStudying,
			Grade:             clean(e.Grade),
			Description:       clean(e.Description),
		})
	}

	for _, s := range doc.Skills {
		ps := types.PersistedSkill{
			ID:                persistedID(s.ID, s.Persisted),
			Name:              clean(s.Name),
			Level:             clean(s.Level),
			YearsOfExperience: copyInt(s.YearsOfExperience),
		}
		if s.IsSoftSkill {
			payload.SoftSkills = append(payload.SoftSkills, ps)
		} else {
			payload.TechnicalSkills = append(payload.TechnicalSkills, ps)
		}
	}

	for _, l := range doc.Languages {
		payload.Languages = append(payload.Languages, types.PersistedLanguage{
			ID:              persistedID(l.ID, l.Persisted),
			Name:            clean(l.Name),
			ProficiencyCode: clean(l.Proficiency),
		})
	}

	for _, c := range doc.Certificates {
		payload.Certifications = append(payload.Certifications, types.PersistedCertification{
			ID:                  persistedID(c.ID, c.Persisted),
			Name:                clean(c.Name),
			IssuingOrganization: clean(c.Organization),
			IssueDate:           CompactDate(c.IssueDate),
			ExpirationDate:      CompactDate(c.ExpirationDate),
			CredentialURL:       clean(c.CredentialURL),
		})
	}

	for _, l := range doc.Links {
		payload.Links = append(payload.Links, types.PersistedLink{
			ID:          persistedID(l.ID, l.Persisted),
			WebsiteName: clean(l.WebsiteName),
			URL:         clean(l.URL),
		})
	}

	for _, p := range doc.PersonalProjects {
		payload.PersonalProjects = append(payload.PersonalProjects, types.PersistedProject{
			ID:          persistedID(p.ID, p.Persisted),
			Title:       clean(p.Title),
			Description: clean(p.Description),
			ProjectURL:  clean(p.URL),
			StartDate:   CompactDate(p.StartDate),
			EndDate:     CompactDate(p.EndDate),
		})
	}

	return payload
}

// AdoptServerIDs copies the keys of a saved payload onto the working items that
// produced it and marks them persisted. Items are matched by position within
// their backend list. A list whose length differs from the saved one is left as is.
func AdoptServerIDs(doc types.WorkingDocument, saved types.ResumePayload) types.WorkingDocument {
	var career, volunteering []int
	for i, e := range doc.Experience {
		if e.IsVolunteering {
			volunteering = append(volunteering, i)
		} else {
			career = append(career, i)
		}
	}
	doc.Experience = slices.Clone(doc.Experience)
	adopt(career, saved.CareerExperiences, func(i int, p types.PersistedExperience) {
		doc.Experience[i].ID, doc.Experience[i].Persisted = serverKey(doc.Experience[i].ID, p.ID)
	})
	adopt(volunteering, saved.VolunteeringExperiences, func(i int, p types.PersistedExperience) {
		doc.Experience[i].ID, doc.Experience[i].Persisted = serverKey(doc.Experience[i].ID, p.ID)
	})

	var technical, soft []int
	for i, sk := range doc.Skills {
		if sk.IsSoftSkill {
			soft = append(soft, i)
		} else {
			technical = append(technical, i)
		}
	}
	doc.Skills = slices.Clone(doc.Skills)
	adopt(technical, saved.TechnicalSkills, func(i int, p types.PersistedSkill) {
		doc.Skills[i].ID, doc.Skills[i].Persisted = serverKey(doc.Skills[i].ID, p.ID)
	})
	adopt(soft, saved.SoftSkills, func(i int, p types.PersistedSkill) {
		doc.Skills[i].ID, doc.Skills[i].Persisted = serverKey(doc.Skills[i].ID, p.ID)
	})

	doc.Education = slices.Clone(doc.Education)
	adopt(indices(len(doc.Education)), saved.Educations, func(i int, p types.PersistedEducation) {
		doc.Education[i].ID, doc.Education[i].Persisted = serverKey(doc.Education[i].ID, p.ID)
	})
	doc.Languages = slices.Clone(doc.Languages)
	adopt(indices(len(doc.Languages)), saved.Languages, func(i int, p types.PersistedLanguage) {
		doc.Languages[i].ID, doc.Languages[i].Persisted = serverKey(doc.Languages[i].ID, p.ID)
	})
	doc.Certificates = slices.Clone(doc.Certificates)
	adopt(indices(len(doc.Certificates)), saved.Certifications, func(i int, p types.PersistedCertification) {
		doc.Certificates[i].ID, doc.Certificates[i].Persisted = serverKey(doc.Certificates[i].ID, p.ID)
	})
	doc.Links = slices.Clone(doc.Links)
	adopt(indices(len(doc.Links)), saved.Links, func(i int, p types.PersistedLink) {
		doc.Links[i].ID, doc.Links[i].Persisted = serverKey(doc.Links[i].ID, p.ID)
	})
	doc.PersonalProjects = slices.Clone(doc.PersonalProjects)
	adopt(indices(len(doc.PersonalProjects)), saved.PersonalProjects, func(i int, p types.PersistedProject) {
		doc.PersonalProjects[i].ID, doc.PersonalProjects[i].Persisted = serverKey(doc.PersonalProjects[i].ID, p.ID)
	})
	return doc
}

func adopt[T any](positions []int, saved []T, set func(int, T)) {
	if len(positions) != len(saved) {
		return
	}
	for k, i := range positions {
		set(i, saved[k])
	}
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// serverKey prefers the saved key; an item the backend returned without one
// keeps its client id and stays unpersisted.
func serverKey(clientID, savedID string) (string, bool) {
	if id := strings.TrimSpace(savedID); id != "" {
		return id, true
	}
	return clientID, false
}

// DecodePersistedResume parses a backend resume document.
func DecodePersistedResume(data []byte) (*types.PersistedResume, error) {
	var r types.PersistedResume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &DecodeError{Message: "invalid persisted resume JSON", Cause: err}
	}
	return &r, nil
}

// DecodeWorkingDocument parses a working document as the UI serializes it.
func DecodeWorkingDocument(data []byte) (*types.WorkingDocument, error) {
	var doc types.WorkingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Message: "invalid working document JSON", Cause: err}
	}
	return &doc, nil
}

func experienceFromPersisted(e types.PersistedExperience, volunteering bool) types.ExperienceItem {
	id, persisted := itemID(e.ID)
	return types.ExperienceItem{
		ID:               id,
		Persisted:        persisted,
		Title:            e.JobTitle,
		Company:          e.CompanyName,
		SeniorityLevel:   e.SeniorityLevel,
		Location:         e.Location,
		StartDate:        ExpandDate(e.StartDate),
		EndDate:          ExpandDate(e.EndDate),
		CurrentlyWorking: copyBool(e.CurrentlyWorking),
		Description:      e.Description,
		IsVolunteering:   volunteering,
	}
}

func skillFromPersisted(s types.PersistedSkill, soft bool) types.SkillItem {
	id, persisted := itemID(s.ID)
	return types.SkillItem{
		ID:                id,
		Persisted:         persisted,
		Name:              s.Name,
		Level:             s.Level,
		YearsOfExperience: copyInt(s.YearsOfExperience),
		IsSoftSkill:       soft,
	}
}

// itemID keeps a server key or mints a client id for items the backend sent without one.
func itemID(serverID string) (string, bool) {
	if id := strings.TrimSpace(serverID); id != "" {
		return id, true
	}
	return uuid.NewString(), false
}

func persistedID(id string, persisted bool) string {
	if !persisted {
		return ""
	}
	return strings.TrimSpace(id)
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func copyInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func copyRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
