// Package textutil provides small text normalization helpers shared by the
// store, ingestion endpoint, and CLI: filename sanitization, project name
// validation, and display formatting for classification labels.
package textutil
