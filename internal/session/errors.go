package session

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrSessionNotFound = errors.New("session not found")

// MissingInputError is returned when an action is triggered before its
// required input is present. No request is sent in that case.
type MissingInputError struct {
	Title   string
	Message string
	Fields  []string
}

func (e *MissingInputError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// RequireInput validates in against its validate tags and converts failures
// into a MissingInputError listing the json names of the offending fields.
func RequireInput(in any, title, message string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &MissingInputError{Title: title, Message: message, Fields: fields}
}
