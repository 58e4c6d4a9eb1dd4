package relay

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseEnvelopeYAML decodes a YAML envelope and validates it like
// ParseEnvelope. Keys and nesting mirror the JSON form.
func ParseEnvelopeYAML(raw []byte) (Envelope, Operation, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Envelope{}, Operation{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if doc == nil {
		return Envelope{}, Operation{}, fmt.Errorf("%w: empty document", ErrInvalidEnvelope)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return Envelope{}, Operation{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return ParseEnvelope(asJSON)
}
