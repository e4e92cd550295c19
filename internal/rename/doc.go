// Package rename drives the content-based renaming stage: extract text,
// look up or request a model analysis, build a convention-conforming name,
// resolve collisions, and apply the rename.
//
// Renames are idempotent: a file whose current name already matches the
// proposal (ignoring case) is skipped, and analysis results are cached by
// content hash so unchanged files never trigger a second model call.
package rename
