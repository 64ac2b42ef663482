package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const optionsSchemaJSON = `{
  "type": "object",
  "additionalProperties": {
    "type": ["array", "null"],
    "items": { "type": "string" }
  }
}`

var optionsSchemaLoader = gojsonschema.NewStringLoader(optionsSchemaJSON)

// validateOptions checks the raw options payload before decoding it. A null
// list is accepted and later treated as an empty one.
func validateOptions(body []byte) error {
	result, err := gojsonschema.Validate(optionsSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedOptions, strings.Join(issues, "; "))
}
