package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/SergeyShmatok/postagg/shared/errors"
	"github.com/SergeyShmatok/postagg/shared/logger"
	"github.com/go-playground/validator/v10"
)

// validator caches struct metadata and is safe for concurrent use
var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses data into body and validates the result.
// Any failure is reported as *errors.DecodeError.
func Decode(data []byte, body any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(body); err != nil {
		return &errors.DecodeError{Cause: err}
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after JSON value at offset %d", dec.InputOffset())
		}
		return &errors.DecodeError{Cause: err}
	}
	if err := validateValue(body); err != nil {
		return &errors.DecodeError{Cause: err}
	}
	return nil
}

func validateValue(body any) error {
	v := reflect.ValueOf(body)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return validate.Struct(v.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := validateValue(v.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("cannot encode response", "error", err)
	}
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.RequestFailedError); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
