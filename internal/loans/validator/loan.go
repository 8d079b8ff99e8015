package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"libris/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type LoanValidator struct {
	validate *validator.Validate
}

func NewLoanValidator() *LoanValidator {
	return &LoanValidator{
		validate: validator.New(),
	}
}

func (v *LoanValidator) ValidateBorrow(req *model.BorrowRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var out ValidationErrors
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("failed %s validation", fe.Tag())
		if fe.Tag() == "required" {
			msg = "is required"
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: msg})
	}
	return out
}
