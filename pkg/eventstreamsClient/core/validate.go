package core

import (
	"reflect"

	"go.uber.org/multierr"
)

// Validator is implemented by closed-vocabulary parameter types.
type Validator interface {
	Validate() error
}

// ValidateStruct checks the `validate` tags of an options struct before any
// network activity. A nil options pointer counts as every field absent. All
// failures of the call are reported together.
func ValidateStruct(options interface{}, operation string) error {
	rv := reflect.ValueOf(options)
	t := reflect.TypeOf(options)
	if t == nil {
		return nil
	}

	var errs error
	isNil := rv.Kind() == reflect.Ptr && rv.IsNil()
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	for _, f := range FieldsOf(t) {
		if isNil {
			if f.Required {
				errs = multierr.Append(errs, &MissingParameterError{Parameter: f.WireKey})
			}
			continue
		}
		errs = multierr.Append(errs, validateField(f, rv.FieldByIndex(f.Index)))
	}

	if errs != nil {
		return &ValidationError{Operation: operation, Err: errs}
	}
	return nil
}

func validateField(f Field, fv reflect.Value) error {
	if isAbsent(fv) {
		if f.Required {
			return &MissingParameterError{Parameter: f.WireKey}
		}
		return nil
	}

	elem := fv
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if f.NonEmpty && elem.Kind() == reflect.String && elem.Len() == 0 {
		return &MissingParameterError{Parameter: f.WireKey}
	}
	v, ok := fv.Interface().(Validator)
	if !ok {
		return nil
	}
	err := v.Validate()
	if invalid, ok := err.(*InvalidParameterError); ok && invalid.Parameter == "" {
		invalid.Parameter = f.WireKey
	}
	return err
}
