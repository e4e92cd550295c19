// Package ocr adds searchable text layers to scanned PDFs.
//
// Each file is processed through a temporary output so the original is never
// left half-written: a verified backup is taken first, ocrmypdf writes to a
// sibling temp file, the temp result is probed for an actual text layer, and
// only then does an atomic rename replace the original. The backup is
// removed on success unless configured otherwise and is the recovery point
// if anything between those steps fails.
package ocr
