// Package store manages the on-disk project layout for datasets and models.
//
// The application data root contains a datasets/ directory of per-dataset
// folders (each with positives/ and negatives/ subdirectories) and a models/
// directory of per-model folders (each with a nested models/ output directory
// and a settings record). A dataset or model exists exactly when its directory
// does; no manifest is kept for datasets.
//
// Creation operations are idempotent and propagate I/O failures tagged as
// filesystem errors. Listing has two deliberately different contracts:
// dataset/model listing is empty-on-absence but fails on read errors, while
// image listing is empty-on-error with a log-only warning. Callers depend on
// both behaviours.
package store
