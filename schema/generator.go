// Package schema provides JSON schema generation for the host link
// configuration, for ops tooling that wants a machine-readable description
// of the tunables.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/CredenceID/tab-pie-system-chre/domain/entities"
)

// Generate creates a JSON Schema (Draft 2020-12) from a Go struct by
// reflection.
func Generate(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	s := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}

// ConfigSchema returns the schema of the link configuration.
func ConfigSchema() ([]byte, error) {
	return Generate(&entities.Config{})
}
