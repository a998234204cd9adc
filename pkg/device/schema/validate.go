// Package schema validates incoming device payloads against fixed
// JSON Schema rule sets.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"devreg/pkg/device"
)

const createSchemaTemplate = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "type"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 100},
		"type": {"enum": %s},
		"status": {"enum": %s},
		"config": {"type": "object"}
	}
}`

const updateSchemaTemplate = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"status": {"enum": %s},
		"config": {"type": "object"}
	}
}`

var printer = message.NewPrinter(language.English)

// Validator checks registration and update payloads against their rule sets.
// Both schemas are compiled once at construction.
type Validator struct {
	create *jsonschema.Schema
	update *jsonschema.Schema
}

// NewValidator compiles the create and update schemas.
func NewValidator() (*Validator, error) {
	types, err := json.Marshal(device.Types)
	if err != nil {
		return nil, err
	}
	statuses, err := json.Marshal(device.Statuses)
	if err != nil {
		return nil, err
	}

	create, err := compile("create.json", fmt.Sprintf(createSchemaTemplate, types, statuses))
	if err != nil {
		return nil, fmt.Errorf("failed to compile create schema: %w", err)
	}
	update, err := compile("update.json", fmt.Sprintf(updateSchemaTemplate, statuses))
	if err != nil {
		return nil, fmt.Errorf("failed to compile update schema: %w", err)
	}

	return &Validator{create: create, update: update}, nil
}

// ValidateCreate checks a registration payload.
// Returns an error describing the first violated constraint.
func (v *Validator) ValidateCreate(body map[string]any) error {
	if err := v.create.Validate(body); err != nil {
		return errors.New(firstViolation(err))
	}
	return nil
}

// ValidateUpdate checks an update payload. The body must carry at least
// one of status/config; present fields follow the create constraints.
func (v *Validator) ValidateUpdate(body map[string]any) error {
	if _, hasStatus := body["status"]; !hasStatus {
		if _, hasConfig := body["config"]; !hasConfig {
			return errors.New("at least one of status or config is required")
		}
	}
	if err := v.update.Validate(body); err != nil {
		return errors.New(firstViolation(err))
	}
	return nil
}

func compile(name, doc string) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, parsed); err != nil {
		return nil, err
	}
	return c.Compile(name)
}

// firstViolation flattens a validation error to a single message
// describing the first violated constraint.
func firstViolation(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}

	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	msg := leaf.ErrorKind.LocalizedString(printer)
	if len(leaf.InstanceLocation) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(leaf.InstanceLocation, "."), msg)
	}
	return msg
}
