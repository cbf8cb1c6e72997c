package mapper

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/types"
)

// knownSites names the link hosts users most often add
var knownSites = map[string]string{
	"github.com":        "GitHub",
	"gitlab.com":        "GitLab",
	"linkedin.com":      "LinkedIn",
	"stackoverflow.com": "Stack Overflow",
	"medium.com":        "Medium",
	"x.com":             "X",
	"twitter.com":       "Twitter",
}

// languageLevels maps free-text proficiency to the codes the backend accepts
var languageLevels = map[string]string{
	"native":             "native",
	"mother tongue":      "native",
	"bilingual":          "native",
	"fluent":             "C2",
	"proficient":         "C1",
	"advanced":           "C1",
	"upper intermediate": "B2",
	"intermediate":       "B1",
	"conversational":     "B1",
	"elementary":         "A2",
	"basic":              "A1",
	"beginner":           "A1",
}

// FromExtraction hydrates a working document from a CV-extraction result (import
// mode). Every item gets a fresh client id. Dates that cannot be parsed are kept
// verbatim so the date validator reports them; the returned warnings describe them.
func FromExtraction(p types.ExtractedProfile) (types.WorkingDocument, []error) {
	var doc types.WorkingDocument
	var warnings []error

	date := func(s string) string {
		d, err := NormalizeDate(s)
		if err != nil {
			warnings = append(warnings, err)
			return strings.TrimSpace(s)
		}
		return d
	}

	info := types.PersonalInfo{
		FirstName: clean(p.FirstName),
		LastName:  clean(p.LastName),
		Email:     clean(p.Email),
		Phone:     clean(p.Phone),
		Title:     clean(p.Headline),
		Summary:   clean(p.Summary),
	}
	if info != (types.PersonalInfo{}) {
		doc.PersonalInfo = &info
	}

	for _, e := range p.Experience {
		current := e.Current
		item := types.ExperienceItem{
			ID:               uuid.NewString(),
			Title:            clean(e.Title),
			Company:          clean(e.Company),
			StartDate:        date(e.StartDate),
			CurrentlyWorking: &current,
			Description:      clean(e.Description),
		}
		if !current {
			item.EndDate = date(e.EndDate)
		}
		doc.Experience = append(doc.Experience, item)
	}

	for _, e := range p.Education {
		doc.Education = append(doc.Education, types.EducationItem{
			ID:           uuid.NewString(),
			Institution:  clean(e.Institution),
			Degree:       clean(e.Degree),
			FieldOfStudy: clean(e.FieldOfStudy),
			StartDate:    date(e.StartDate),
			EndDate:      date(e.EndDate),
		})
	}

	seen := make(map[string]bool)
	for _, s := range p.Skills {
		name := clean(s)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		doc.Skills = append(doc.Skills, types.SkillItem{ID: uuid.NewString(), Name: name})
	}

	for _, l := range p.Languages {
		name := clean(l.Name)
		if name == "" {
			continue
		}
		doc.Languages = append(doc.Languages, types.LanguageItem{
			ID:          uuid.NewString(),
			Name:        name,
			Proficiency: proficiencyCode(l.Level),
		})
	}

	for _, raw := range p.Links {
		link := clean(raw)
		if link == "" {
			continue
		}
		doc.Links = append(doc.Links, types.LinkItem{
			ID:          uuid.NewString(),
			WebsiteName: siteName(link),
			URL:         link,
		})
	}

	return doc, warnings
}

// proficiencyCode keeps CEFR codes and maps descriptive levels onto them.
func proficiencyCode(level string) string {
	l := strings.ToLower(clean(level))
	if l == "" {
		return ""
	}
	if code, ok := languageLevels[l]; ok {
		return code
	}
	if len(l) == 2 && strings.ContainsRune("abc", rune(l[0])) && strings.ContainsRune("12", rune(l[1])) {
		return strings.ToUpper(l)
	}
	return clean(level)
}

// siteName derives a display name from a link's host.
func siteName(link string) string {
	target := link
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}
	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if name, ok := knownSites[host]; ok {
		return name
	}
	return host
}
