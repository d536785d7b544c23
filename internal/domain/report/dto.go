package report

import "github.com/lovelys-studio/backoffice/internal/pkg/validator"

type AssistantRequest struct {
	Query string `json:"query"`
}

func (r *AssistantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Query) {
		errs = append(errs, validator.ValidationError{Field: "query", Message: "query is required"})
	}
	if len(r.Query) > 4000 {
		errs = append(errs, validator.ValidationError{Field: "query", Message: "query must not exceed 4000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssistantResponse struct {
	Answer string `json:"answer"`
	// Fallback is set when the generator failed and Answer holds the apology text.
	Fallback bool `json:"fallback"`
}
