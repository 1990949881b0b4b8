// Package schema implements a small structural JSON schema vocabulary:
// type, required, properties, format and items.
//
// Validation walks the value once and collects every violation rather
// than stopping at the first, so a report always describes the whole
// document. Schemas can be authored in Go, JSON or YAML. Schema trees
// must be acyclic; that is the caller's contract.
//
// For full-draft JSON Schema documents use the expect package's
// MatchesJSONSchema, which delegates to gojsonschema.
package schema
