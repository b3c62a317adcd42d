// Package validation holds the portal specific validator rules.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Phone numbers: optional leading +, digits separated by spaces or dashes
	PhonePattern = `^\+?[0-9][0-9 \-]{5,19}$`

	// Graduation year bounds
	MinGraduationYear = 1950
	MaxGraduationYear = 2100

	// Skill tag max length
	SkillMaxLength = 50
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Phone *regexp.Regexp
}{
	Phone: regexp.MustCompile(PhonePattern),
}

// New returns a validator with the portal rules registered:
//
//	phone     a PhonePattern match
//	gradyear  a year within MinGraduationYear..MaxGraduationYear
//	skill     a non-blank tag of at most SkillMaxLength characters
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("gradyear", validateGraduationYear)
	_ = v.RegisterValidation("skill", validateSkill)
	return v
}

func validatePhone(fl validator.FieldLevel) bool {
	return CompiledPatterns.Phone.MatchString(fl.Field().String())
}

func validateGraduationYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= MinGraduationYear && year <= MaxGraduationYear
}

func validateSkill(fl validator.FieldLevel) bool {
	skill := strings.TrimSpace(fl.Field().String())
	return skill != "" && len(skill) <= SkillMaxLength
}
