package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformedResponse marks a body that is not the JSON shape the client expects.
var ErrMalformedResponse = errors.New("malformed response")

const tasksSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "date", "completed", "description"],
    "properties": {
      "id": {"type": "integer"},
      "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "completed": {"type": "boolean"},
      "description": {"type": "string"},
      "goal_id": {"type": ["integer", "null"]}
    }
  }
}`

const validationSchemaJSON = `{
  "type": "object",
  "required": ["success", "feedback"],
  "properties": {
    "success": {"type": "boolean"},
    "feedback": {"type": "string"}
  }
}`

const chatSchemaJSON = `{
  "type": "object",
  "required": ["response"],
  "properties": {
    "response": {"type": "string"}
  }
}`

var (
	chatSchema       = jsonschema.MustCompileString("chat.schema.json", chatSchemaJSON)
	tasksSchema      = jsonschema.MustCompileString("tasks.schema.json", tasksSchemaJSON)
	validationSchema = jsonschema.MustCompileString("validation.schema.json", validationSchemaJSON)
)

// decodeValidated checks body against schema before unmarshalling it into v.
func decodeValidated(body []byte, schema *jsonschema.Schema, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, schemaMessage(err))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	collectCauses(ve, &msgs)
	return strings.Join(msgs, "; ")
}

func collectCauses(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectCauses(c, msgs)
	}
}
