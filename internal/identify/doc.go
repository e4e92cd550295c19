// Package identify turns extracted document text into filename proposals.
//
// Two analyzers are provided. The generic analyzer asks the model for a
// DocumentType_MainSubject_KeyIdentifier_Date style name. The estate
// analyzer asks for the structured component set used by the estate research
// convention and normalizes the response into naming.EstateComponents.
//
// A page-count and keyword heuristic flags compilation files (exhibit
// bundles, document packets) before the model is consulted so the prompt can
// steer those toward a Collection document type.
package identify
