//nolint:revive // types is a standard Go package name pattern
package types

// ExtractedProfile is what the CV-extraction service returns for an uploaded
// resume. Fields are best-effort; anything may be missing.
type ExtractedProfile struct {
	FirstName  string                `json:"first_name"`
	LastName   string                `json:"last_name"`
	Email      string                `json:"email"`
	Phone      string                `json:"phone"`
	Headline   string                `json:"headline"`
	Summary    string                `json:"summary"`
	Experience []ExtractedExperience `json:"experience"`
	Education  []ExtractedEducation  `json:"education"`
	Skills     []string              `json:"skills"`
	Languages  []ExtractedLanguage   `json:"languages"`
	Links      []string              `json:"links"`
}

// ExtractedExperience is one position found in an uploaded CV.
type ExtractedExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ExtractedEducation is one education entry found in an uploaded CV.
type ExtractedEducation struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// ExtractedLanguage is one language found in an uploaded CV.
type ExtractedLanguage struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}
