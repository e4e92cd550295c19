// Package naming implements the filename conventions, collision
// resolution, validation, and checksum sidecars for the rename pipeline.
//
// Two conventions are supported: the generic
// DocumentType_MainSubject_KeyIdentifier_Date scheme with numeric collision
// suffixes, and the structured estate research scheme (SOP v2.1) with a
// validation grammar and a bounded "-NN" tie-breaker.
package naming
