// Package yamlschema turns YAML-authored JSON Schema documents into
// canonical JSON Schema, documentation tables and validation reports.
//
// The root package holds the document model and the documentation walk:
//
// - Map / Node: order-preserving document tree and classified schema nodes
// - Resolve: local JSON Pointer ($ref) resolution
// - Flatten: depth-first walk producing one Row per documented property
// - Error / Issues: failure kinds and validation reports
//
// Design policy:
// - Keep the root package free of I/O; loaders and writers live in yamlsrc/,
// canonical/, docs/ and validate/, the CLI under cmd/yamlschema.
// - Declaration order is significant everywhere and is never re-sorted.
//
// Typical usage:
//
//	doc, err := yamlsrc.LoadFile("share.yaml")
//	rows, err := yamlschema.FlattenDocument(doc)
//	err = docs.WriteFile("share.csv", rows)
package yamlschema
