package ai

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const itinerarySchemaJSON = `{
  "type": "object",
  "required": ["days"],
  "properties": {
    "days": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["day", "activities"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "theme": {"type": "string"},
          "activities": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["time", "name"],
              "properties": {
                "time": {"type": "string", "pattern": "^[0-2][0-9]:[0-5][0-9]$"},
                "name": {"type": "string", "minLength": 1},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "duration": {"type": "string"},
                "cost": {"type": "number", "minimum": 0}
              }
            }
          }
        }
      }
    }
  }
}`

var itinerarySchema = mustSchema(itinerarySchemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("itinerary schema: %v", err))
	}
	return schema
}

// validateItineraryJSON checks raw model output against the itinerary schema.
func validateItineraryJSON(raw string) error {
	result, err := itinerarySchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrMalformedOutput, strings.Join(msgs, "; "))
	}
	return nil
}
