package whatsapp

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError reports a webhook body that does not match the expected shape.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid webhook payload: %s", strings.Join(e.Problems, "; "))
}

const webhookSchema = `{
  "type": "object",
  "required": ["entry"],
  "properties": {
    "object": {"type": "string"},
    "entry": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["changes"],
        "properties": {
          "changes": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["value"],
              "properties": {
                "value": {
                  "type": "object",
                  "properties": {
                    "metadata": {"type": "object"},
                    "messages": {
                      "type": "array",
                      "items": {
                        "type": "object",
                        "required": ["from", "id", "type"],
                        "properties": {
                          "from": {"type": "string", "minLength": 1},
                          "id": {"type": "string"},
                          "type": {"type": "string"},
                          "text": {
                            "type": "object",
                            "required": ["body"],
                            "properties": {"body": {"type": "string"}}
                          },
                          "interactive": {
                            "type": "object",
                            "required": ["type"],
                            "properties": {"type": {"type": "string"}}
                          }
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(webhookSchema)

// Validate checks body against the webhook schema. Shape problems return *ValidationError.
func Validate(body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return &ValidationError{Problems: problems}
	}
	return nil
}
