// Command pdfocr is the batch PDF pipeline CLI: scan directories for
// missing text layers, OCR them in place, and rename files from their
// content.
package main
