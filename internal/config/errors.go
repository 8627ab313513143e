package config

import "fmt"

// FieldError reports a config field with the wrong type or value.
type FieldError struct {
	Field string
	Want  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid type for field: %s (expected %s)", e.Field, e.Want)
}

// UnknownFieldError reports a top-level field the config does not define.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "unknown config field: " + e.Field
}
