// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps request bodies. Large enough for a 10 MB file encoded
// as base64 inside JSON.
const MaxBodyBytes = 16 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeAndValidate parses a JSON body into v and checks its validate
// struct tags. The error message is safe to show to the caller.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := ParseJSONBody(r, v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return fmt.Errorf("request body exceeds %d bytes", tooBig.Limit)
		}
		return errors.New("invalid JSON")
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describeField(verrs[0])
		}
		return err
	}
	return nil
}

func describeField(fe validator.FieldError) error {
	name := fe.Namespace()
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "min":
		return fmt.Errorf("%s must have at least %s item(s)", name, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s long", name, fe.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid (%s)", name, fe.Tag())
	}
}
