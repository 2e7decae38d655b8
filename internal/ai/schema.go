package ai

import (
	"sort"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Object builds a strict object schema: every property is required and no
// other properties are allowed.
func Object(description string, props map[string]jsonschema.Definition) jsonschema.Definition {
	required := make([]string, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	sort.Strings(required)

	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Description:          description,
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}
}

func String(description string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.String, Description: description}
}

func Integer(description string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Integer, Description: description}
}

func ArrayOf(description string, item jsonschema.Definition) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Array, Description: description, Items: &item}
}

func StringArray(description string) jsonschema.Definition {
	return ArrayOf(description, jsonschema.Definition{Type: jsonschema.String})
}
