// Package services defines shared error classification and context plumbing
// for the external collaborators the pipeline shells out to or calls over
// HTTP (ocrmypdf, the cloud language model).
package services
