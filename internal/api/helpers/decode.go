package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names so test drivers see the field they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes JSON from the request body, rejecting unknown fields.
//
// Usage:
//
//	var req LoginRequest
//	if err := helpers.DecodeJSON(r, &req); err != nil {
//	    helpers.RespondError(w, http.StatusBadRequest, err.Error())
//	    return
//	}
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// DecodeAndValidate decodes the body and runs the struct's validate tags.
func DecodeAndValidate(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of: "+fe.Param())
		case "datetime":
			msgs = append(msgs, fe.Field()+" must match "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
