package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

// DateLayout is the full-date format the working document uses.
const DateLayout = "2006-01-02"

// fieldLabels maps struct field names to the wording used in messages
var fieldLabels = map[string]string{
	"FirstName":         "first name",
	"LastName":          "last name",
	"Email":             "email",
	"Phone":             "phone",
	"BirthDate":         "birth date",
	"Title":             "title",
	"Company":           "company",
	"SeniorityLevel":    "seniority level",
	"StartDate":         "start date",
	"EndDate":           "end date",
	"Institution":       "institution",
	"Degree":            "degree",
	"FieldOfStudy":      "field of study",
	"Name":              "name",
	"YearsOfExperience": "years of experience",
	"Proficiency":       "proficiency",
	"Organization":      "organization",
	"IssueDate":         "issue date",
	"ExpirationDate":    "expiration date",
	"WebsiteName":       "website name",
	"URL":               "URL",
	"Description":       "description",
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// structValidator returns the shared validator with the wizard's custom rules registered.
func structValidator() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("notblank", NotBlank)
		_ = v.RegisterValidation("isodate", ISODate)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		engine = v
	})
	return engine
}

// NotBlank fails on empty and whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return !isBlank(fl.Field().String())
}

// ISODate accepts empty values (combine with notblank when required) and YYYY-MM-DD dates
func ISODate(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	_, err := time.Parse(DateLayout, val)
	return err == nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// checkStruct runs the tag rules on one struct and converts failures to violations.
// prefix is the message lead ("Experience #2"), path the field path root ("experience[1]").
func checkStruct(domain types.Domain, prefix, path string, s any) []types.Violation {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable with a nil or non-struct argument
		return []types.Violation{newViolation(domain, path, fmt.Sprintf("%s: %v", prefix, err))}
	}

	out := make([]types.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, newViolation(domain, path+"."+fe.Field(), formatFieldError(prefix, fe)))
	}
	return out
}

// formatFieldError converts a single validator failure to a user-facing message
func formatFieldError(prefix string, fe validator.FieldError) string {
	label := fieldLabel(fe.StructField())
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s: %s is required", prefix, label)
	case "email":
		return fmt.Sprintf("%s: %s must be a valid email address", prefix, label)
	case "isodate":
		return fmt.Sprintf("%s: %s must be a valid date (YYYY-MM-DD)", prefix, label)
	case "min":
		return fmt.Sprintf("%s: %s must be at least %s", prefix, label, fe.Param())
	case "max":
		return fmt.Sprintf("%s: %s must be at most %s", prefix, label, fe.Param())
	default:
		return fmt.Sprintf("%s: %s is invalid (%s)", prefix, label, fe.Tag())
	}
}

func fieldLabel(structField string) string {
	if label, ok := fieldLabels[structField]; ok {
		return label
	}
	return strings.ToLower(structField)
}

func newViolation(domain types.Domain, field, message string) types.Violation {
	return types.Violation{
		Step:    steps.OrdinalForDomain(domain),
		Domain:  domain,
		Field:   field,
		Message: message,
		Source:  types.SourceLocal,
	}
}
