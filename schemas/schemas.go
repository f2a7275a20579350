// Package schemas embeds the JSON Schemas shipped with the binary.
package schemas

import _ "embed"

// RegistrySchemaJSON is the JSON Schema for registry YAML files.
//
//go:embed registry.schema.json
var RegistrySchemaJSON string
