// Package classify maps validation messages and backend field paths to wizard steps.
package classify

import (
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

// rule pairs a step with the keyword fragments that attribute text to it
type rule struct {
	step     int
	keywords []string
}

// messageLabels are the leading labels every local validator message starts with.
// They are unambiguous, so they are checked before any field keyword.
var messageLabels = []rule{
	{steps.PersonalInfo, []string{"personal info"}},
	{steps.Experience, []string{"experience"}},
	{steps.Education, []string{"education"}},
	{steps.Skills, []string{"skill"}},
	{steps.Languages, []string{"language"}},
	{steps.Certificates, []string{"certificate", "certification"}},
	{steps.Links, []string{"link"}},
	{steps.Projects, []string{"project"}},
	{steps.Template, []string{"template"}},
}

// precedence is the explicit keyword order for free text and paths. Collection
// domains come before personal info so that shared field names such as "title"
// and "description" resolve to the collection.
var precedence = []rule{
	{steps.Skills, []string{"years of experience", "years_of_experience", "yearsofexperience"}},
	{steps.Experience, []string{"experience", "career", "volunteer", "company", "seniority", "job", "currently working", "currently_working", "employer", "title", "description"}},
	{steps.Education, []string{"education", "institution", "degree", "field of study", "field_of_study", "school", "university", "studying"}},
	{steps.Projects, []string{"project"}},
	{steps.Certificates, []string{"certificat", "issuing", "organization", "credential", "issue date", "issue_date", "expiration"}},
	{steps.Links, []string{"link", "website", "url"}},
	{steps.Skills, []string{"skill"}},
	{steps.Languages, []string{"language", "proficiency"}},
	{steps.Template, []string{"template"}},
	{steps.PersonalInfo, []string{"personal", "first name", "first_name", "last name", "last_name", "email", "phone", "birth", "city", "country", "summary"}},
}

// collections maps the root segment of a backend or working-document path to its step.
var collections = map[string]int{
	"personal_info":            steps.PersonalInfo,
	"personalinfo":             steps.PersonalInfo,
	"career_experiences":       steps.Experience,
	"volunteering_experiences": steps.Experience,
	"experience":               steps.Experience,
	"experiences":              steps.Experience,
	"educations":               steps.Education,
	"education":                steps.Education,
	"technical_skills":         steps.Skills,
	"soft_skills":              steps.Skills,
	"skills":                   steps.Skills,
	"languages":                steps.Languages,
	"certifications":           steps.Certificates,
	"certificates":             steps.Certificates,
	"links":                    steps.Links,
	"personal_projects":        steps.Projects,
	"personalprojects":         steps.Projects,
	"projects":                 steps.Projects,
	"template_id":              steps.Template,
	"selectedtemplate":         steps.Template,
	"template":                 steps.Template,
	"name":                     steps.Review,
	"resume_name":              steps.Review,
	"resumename":               steps.Review,
}

// envelope segments wrap the resume in request bodies and carry no domain meaning
var envelope = map[string]bool{
	"body":    true,
	"data":    true,
	"resume":  true,
	"payload": true,
}

// ClassifyLocalMessage attributes a validator message to a step. The message's
// leading domain label wins; otherwise field keywords are matched in precedence order.
func ClassifyLocalMessage(message string) (int, bool) {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return types.UnknownStep, false
	}

	for _, r := range messageLabels {
		for _, kw := range r.keywords {
			if strings.HasPrefix(text, kw) {
				return r.step, true
			}
		}
	}
	return matchKeywords(text)
}

// ClassifyServerFieldPath attributes a backend field path such as
// "career_experiences[0].company" or "body.resume.personal_info.email" to a step.
func ClassifyServerFieldPath(path string) (int, bool) {
	segments := pathSegments(path)
	if len(segments) == 0 {
		return types.UnknownStep, false
	}

	if step, ok := collections[segments[0]]; ok {
		return step, true
	}
	return matchKeywords(strings.Join(segments, "."))
}

// ClassifyFieldError attributes one backend field error, trying the path first
// and falling back to the message text.
func ClassifyFieldError(fe types.FieldError) (int, bool) {
	if step, ok := ClassifyServerFieldPath(fe.FieldPath); ok {
		return step, true
	}
	return ClassifyLocalMessage(fe.Message)
}

// FromFieldErrors converts backend field errors into tagged violations. Entries
// that cannot be attributed keep types.UnknownStep.
func FromFieldErrors(details []types.FieldError, source string) []types.Violation {
	out := make([]types.Violation, 0, len(details))
	for _, d := range details {
		step, _ := ClassifyFieldError(d)
		v := types.Violation{
			Step:    step,
			Field:   d.FieldPath,
			Message: serverMessage(d),
			Source:  source,
		}
		if desc, err := steps.ByOrdinal(step); err == nil {
			v.Domain = desc.Domain
		}
		out = append(out, v)
	}
	return out
}

// StepOf returns the step a violation belongs to, reclassifying the message
// when the violation carries no step tag.
func StepOf(v types.Violation) (int, bool) {
	if v.Step >= 0 && v.Step <= steps.LastOrdinal() {
		return v.Step, true
	}
	if v.Field != "" {
		if step, ok := ClassifyServerFieldPath(v.Field); ok {
			return step, true
		}
	}
	return ClassifyLocalMessage(v.Message)
}

// FindFirstStepWithErrors returns the lowest-ordinal step owning at least one
// violation. Unattributable violations are ignored.
func FindFirstStepWithErrors(vs []types.Violation) (int, bool) {
	owned := make(map[int]bool, len(vs))
	for _, v := range vs {
		if step, ok := StepOf(v); ok {
			owned[step] = true
		}
	}
	for _, d := range steps.All() {
		if owned[d.Ordinal] {
			return d.Ordinal, true
		}
	}
	return types.UnknownStep, false
}

// FindFirstStepWithMessages is FindFirstStepWithErrors for untagged messages.
func FindFirstStepWithMessages(messages []string) (int, bool) {
	vs := make([]types.Violation, 0, len(messages))
	for _, m := range messages {
		vs = append(vs, types.Violation{Step: types.UnknownStep, Message: m})
	}
	return FindFirstStepWithErrors(vs)
}

func matchKeywords(text string) (int, bool) {
	for _, r := range precedence {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.step, true
			}
		}
	}
	return types.UnknownStep, false
}

// pathSegments lowercases a path and splits it on '.', '[', ']' and '/',
// dropping envelope segments and numeric indices.
func pathSegments(path string) []string {
	fields := strings.FieldsFunc(strings.ToLower(path), func(r rune) bool {
		return r == '.' || r == '[' || r == ']' || r == '/'
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || envelope[f] || isIndex(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// serverMessage prefixes a bare backend message with its field path so the
// user can tell which entry it refers to.
func serverMessage(fe types.FieldError) string {
	msg := strings.TrimSpace(fe.Message)
	if fe.FieldPath == "" {
		return msg
	}
	if msg == "" {
		return fe.FieldPath + ": invalid"
	}
	return fe.FieldPath + ": " + msg
}
