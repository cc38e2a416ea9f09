package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/campushub/showcase-api/pkg/apperrors"
)

var (
	githubURLPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/.*`)
	httpURLPattern   = regexp.MustCompile(`^https?://.*`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Errors only occur for invalid tag registration, which would be a
	// programming error caught by any test run.
	_ = v.RegisterValidation("github_url", func(fl validator.FieldLevel) bool {
		return githubURLPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("http_url_pattern", func(fl validator.FieldLevel) bool {
		return httpURLPattern.MatchString(fl.Field().String())
	})
	return v
}

// validationMessages maps struct fields to caller-facing messages matching
// the persisted record constraints.
var validationMessages = map[string]string{
	"Project.Title":       "title is required and cannot be more than 100 characters",
	"Project.Description": "description is required and cannot be more than 2000 characters",
	"Project.Category":    "category must be one of Technology, Healthcare, Education, Agriculture, Business, Other",
	"Project.GithubLink":  "please provide a valid GitHub URL",
	"Project.LiveDemo":    "please provide a valid URL",
	"Review.Rating":       "rating must be between 1 and 5",
	"Review.Comment":      "comment is required",
}

// ValidateProject checks the field constraints for create and update.
// Returns a *apperrors.ValidationError for the first failing field.
func ValidateProject(p *Project) error {
	return firstValidationError(validate.Struct(p))
}

// ValidateReview checks rating and comment constraints.
func ValidateReview(r *Review) error {
	return firstValidationError(validate.StructPartial(r, "Rating", "Comment"))
}

func firstValidationError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}
	fe := errs[0]
	msg, ok := validationMessages[fe.StructNamespace()]
	if !ok {
		msg = "invalid value"
	}
	return apperrors.NewValidationError(fe.Field(), msg)
}
