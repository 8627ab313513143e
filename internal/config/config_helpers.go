package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

func lookup(v cue.Value, name string) (cue.Value, bool) {
	f := v.LookupPath(cue.ParsePath(name))
	return f, f.Exists()
}

func decodeString(v cue.Value, name string, dst *string) (bool, error) {
	f, ok := lookup(v, name)
	if !ok {
		return false, nil
	}
	if f.Kind() != cue.StringKind {
		return false, &FieldError{Field: name, Want: "string"}
	}
	return true, f.Decode(dst)
}

func decodeBool(v cue.Value, name string, dst *bool) (bool, error) {
	f, ok := lookup(v, name)
	if !ok {
		return false, nil
	}
	if f.Kind() != cue.BoolKind {
		return false, &FieldError{Field: name, Want: "bool"}
	}
	return true, f.Decode(dst)
}

func decodeInt(v cue.Value, name string, dst *int) (bool, error) {
	f, ok := lookup(v, name)
	if !ok {
		return false, nil
	}
	if f.Kind() != cue.IntKind {
		return false, &FieldError{Field: name, Want: "int"}
	}
	return true, f.Decode(dst)
}

func decodeStrings(v cue.Value, name string, dst *[]string) (bool, error) {
	f, ok := lookup(v, name)
	if !ok {
		return false, nil
	}
	if f.Kind() != cue.ListKind {
		return false, &FieldError{Field: name, Want: "list of strings"}
	}
	var out []string
	if err := f.Decode(&out); err != nil {
		return false, &FieldError{Field: name, Want: "list of strings"}
	}
	*dst = out
	return true, nil
}

func decodeStringMap(v cue.Value, name string, dst *map[string]string) (bool, error) {
	f, ok := lookup(v, name)
	if !ok {
		return false, nil
	}
	if f.Kind() != cue.StructKind {
		return false, &FieldError{Field: name, Want: "struct of strings"}
	}
	out := map[string]string{}
	if err := f.Decode(&out); err != nil {
		return false, &FieldError{Field: name, Want: "struct of strings"}
	}
	*dst = out
	return true, nil
}
