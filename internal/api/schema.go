package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request body schemas. Key names match the mobile client byte for byte.
const schemaSignup = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["email", "password", "firstName"],
  "properties": {
    "email": { "type": "string" },
    "password": { "type": "string" },
    "firstName": { "type": "string" }
  }
}`

const schemaLogin = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["email", "password"],
  "properties": {
    "email": { "type": "string" },
    "password": { "type": "string" }
  }
}`

const schemaChatMessage = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["message"],
  "properties": {
    "message": { "type": "string" }
  }
}`

var (
	signupLoader      = gojsonschema.NewStringLoader(schemaSignup)
	loginLoader       = gojsonschema.NewStringLoader(schemaLogin)
	chatMessageLoader = gojsonschema.NewStringLoader(schemaChatMessage)
)

// validateSchema checks raw against schema and returns a readable summary
// of every violation.
func validateSchema(schema gojsonschema.JSONLoader, raw []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
