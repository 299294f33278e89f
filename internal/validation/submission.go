// internal/validation/submission.go

// Package validation checks submission payloads against the intake schema
// before anything touches the store.
package validation

import (
	"competition-intake/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError is one field-level failure, machine-readable so the form can
// attach the message to the right input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// submissionSchema mirrors the client form's rules; the server is the
// authority, the client only mirrors it for UX.
const submissionSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": [
		"name", "email", "discordId", "teamName", "teamMembers",
		"teamExperience", "previousProjects", "teamExperienceDescription",
		"gameTitle", "gameConcept", "whyWin", "whyPlayersLike",
		"promotionPlan", "monetizationPlan", "projectedDAU", "dayOneRetention",
		"developmentTimeline", "resourcesTools", "acknowledgment"
	],
	"properties": {
		"name":      {"type": "string", "minLength": 2},
		"email":     {"type": "string", "format": "email"},
		"discordId": {"type": "string", "pattern": "^.{3,32}#[0-9]{4}$|^.{2,32}$"},

		"teamName":                  {"type": "string", "minLength": 2},
		"teamMembers":               {"type": "string", "minLength": 10, "maxLength": 500},
		"teamExperience":            {"type": "string", "minLength": 10, "maxLength": 500},
		"previousProjects":          {"type": "string", "minLength": 10, "maxLength": 500},
		"teamExperienceDescription": {"type": "string", "minLength": 50, "maxLength": 600},

		"gameTitle":      {"type": "string", "minLength": 2},
		"gameConcept":    {"type": "string", "minLength": 50, "maxLength": 600},
		"whyWin":         {"type": "string", "minLength": 30, "maxLength": 400},
		"whyPlayersLike": {"type": "string", "minLength": 30, "maxLength": 400},

		"promotionPlan":       {"type": "string", "minLength": 30, "maxLength": 400},
		"monetizationPlan":    {"type": "string", "minLength": 30, "maxLength": 400},
		"projectedDAU":        {"type": "integer", "minimum": 1, "maximum": 1000000},
		"dayOneRetention":     {"type": "integer", "minimum": 1, "maximum": 100},
		"developmentTimeline": {"type": "string", "minLength": 30, "maxLength": 400},
		"resourcesTools":      {"type": "string", "minLength": 30, "maxLength": 400},

		"acknowledgment": {"type": "boolean", "enum": [true]}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(submissionSchema)

// ValidateSubmission validates the raw request body. A nil return means the
// payload is acceptable; otherwise the error carries per-field results in its
// metadata.
func ValidateSubmission(body []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Malformed JSON lands here, not as field errors.
		return errors.NewValidationFailedError([]map[string]interface{}{
			{"field": "", "code": "INVALID_JSON", "message": err.Error()},
		})
	}

	if result.Valid() {
		return nil
	}

	fieldErrors := make([]map[string]interface{}, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		fieldErrors = append(fieldErrors, map[string]interface{}{
			"field":   desc.Field(),
			"code":    desc.Type(),
			"message": desc.Description(),
		})
	}
	return errors.NewValidationFailedError(fieldErrors)
}
