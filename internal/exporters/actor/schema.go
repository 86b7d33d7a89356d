package actor

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "actor.schema.json"

type documentSchema struct {
	schema *jsonschema.Schema
}

func compileSchema() (*documentSchema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to add actor schema")
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to compile actor schema")
	}
	return &documentSchema{schema: schema}, nil
}

// validate checks an encoded actor document. Violations are reported as
// ExportMapping errors listing each failing location.
func (s *documentSchema) validate(data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return errors.WrapWithCode(err, errors.CodeExportMapping, "actor document is not valid JSON")
	}

	if err := s.schema.Validate(doc); err != nil {
		var violations []string
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			for _, cause := range leafCauses(verr) {
				violations = append(violations, cause.InstanceLocation+": "+cause.Message)
			}
		}
		if len(violations) == 0 {
			violations = []string{err.Error()}
		}
		return errors.ExportMappingf("actor document violates schema: %s", strings.Join(violations, "; ")).
			WithMeta("violations", violations)
	}
	return nil
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, c := range err.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}
