// Package analysiscache persists model analysis results keyed by document
// content hash, so re-running a batch does not re-bill unchanged files.
//
// The cache is content-addressed: the key is the SHA-256 of the PDF bytes,
// so a file that was OCR-processed (and therefore rewritten) naturally gets
// a fresh analysis while an untouched file hits the cache regardless of its
// current name or location.
package analysiscache
