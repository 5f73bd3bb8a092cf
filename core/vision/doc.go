// Package vision integrates the external image classifier.
//
// The classifier is an OpenAI-compatible chat-completions endpoint that
// receives a base64 data-URL image together with a fixed recognition prompt
// and answers with a JSON array of {product, quantity} objects. The package
// hides the wire format behind the Classifier interface so features and
// tests can substitute their own implementation.
//
// # Failure Model
//
// Calls are synchronous, bounded by the configured client timeout, and never
// retried. A transport failure, a non-200 status, or output that is not a
// JSON array surfaces as an error the caller treats as a recoverable
// upstream failure. Individual malformed array elements do not fail the
// call; they decode to zero-value detections and are skipped during
// reconciliation.
package vision
