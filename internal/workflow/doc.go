// Package workflow runs the batch pipeline over a directory: detect text
// layers, OCR files that need them, then rename from content analysis.
//
// Files are processed in a single linear pass in name order. A directory
// lock file prevents two runs from touching the same directory at once, and
// consecutive model calls are paced with a fixed delay. Each run writes a
// JSON report of every action taken to the log directory.
package workflow
