package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/TWRT/task-king/internal/models"
)

const taskSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"},
		"priority": {"type": "string", "enum": ["High", "Medium", "Low"]},
		"completed": {"type": "boolean"}
	}
}`

var taskSchema = jsonschema.MustCompileString("task.schema.json", taskSchemaJSON)

var (
	textPaths = []string{"title", "description", "priority"}
	truthy    = map[string]bool{"true": true, "1": true, "yes": true}
	falsy     = map[string]bool{"false": true, "0": true, "no": true}
)

// DecodeTaskFields casts a JSON request body onto the task document schema.
// Unknown keys (including _id) and null values are dropped, scalars are cast
// to the path's type where the cast is unambiguous, and whatever is left is
// validated against the schema. An empty body decodes to no fields; a body
// with anything after the first JSON value is rejected.
func DecodeTaskFields(body []byte) (models.TaskFields, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return models.TaskFields{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return models.TaskFields{}, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return models.TaskFields{}, fmt.Errorf("%w: unexpected data after JSON body", ErrInvalidTask)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return models.TaskFields{}, fmt.Errorf("%w: body must be a JSON object", ErrInvalidTask)
	}

	doc := coerceDocument(obj)
	if err := taskSchema.Validate(doc); err != nil {
		return models.TaskFields{}, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}

	var fields models.TaskFields
	if v, ok := doc["title"].(string); ok {
		fields.Title = &v
	}
	if v, ok := doc["description"].(string); ok {
		fields.Description = &v
	}
	if v, ok := doc["priority"].(string); ok {
		p := models.Priority(v)
		fields.Priority = &p
	}
	if v, ok := doc["completed"].(bool); ok {
		fields.Completed = &v
	}
	return fields, nil
}

func coerceDocument(obj map[string]any) map[string]any {
	doc := make(map[string]any, 4)
	for _, path := range textPaths {
		v, ok := obj[path]
		if !ok || v == nil {
			continue
		}
		doc[path] = castString(v)
	}
	if v, ok := obj["completed"]; ok && v != nil {
		doc["completed"] = castBool(v)
	}
	return doc
}

func castString(v any) any {
	switch x := v.(type) {
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	return normalizeNumbers(v)
}

func castBool(v any) any {
	switch x := v.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if truthy[s] {
			return true
		}
		if falsy[s] {
			return false
		}
	case json.Number:
		if truthy[x.String()] {
			return true
		}
		if falsy[x.String()] {
			return false
		}
	}
	return normalizeNumbers(v)
}

// normalizeNumbers turns json.Number leaves into float64 so the schema
// validator sees the same types encoding/json would produce.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	case []any:
		for i := range x {
			x[i] = normalizeNumbers(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeNumbers(x[k])
		}
		return x
	}
	return v
}
