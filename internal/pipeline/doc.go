// Package pipeline wires the download run end to end: load the CSV
// tables, resolve object names to label codes, select candidate
// images, drop files already present in the output bucket, cap the
// batch, and fetch what remains.
//
// Table loading and label resolution errors are fatal and happen
// before any network fetch. Per-image fetch failures are counted in
// the returned Result, never raised.
package pipeline
