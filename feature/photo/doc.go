// Package photo implements the photo ingestion feature.
//
// An uploaded photo is stored in the object store under uploads/, sent to
// the vision classifier, and the resulting detections are persisted as a
// JSON analysis record under results/ before being reconciled into the
// inventory. A classifier failure still keeps the stored photo and reports
// partial success (HTTP 207).
//
// # HTTP Endpoints
//
//   - POST /photo_handler                    : upload, classify, reconcile
//   - GET  /uploads/:filename                : serve a stored photo
//   - GET  /api/analysis_results             : list analysis records
//   - GET  /api/analysis_results/:filename   : fetch one analysis record
package photo
