// Package inventory implements the food inventory feature.
//
// It owns the items table and the two ways records enter it: the manual
// CRUD API and the reconciliation of photo detections.
//
// # Reconciliation
//
// A detection (product name + quantity, optionally a shelf life in days)
// is merged into an existing record when the name matches and the computed
// expiration date falls within one day of the record's date; otherwise a
// new record is created. Each merge-or-insert runs inside a single database
// transaction so concurrent uploads of the same product cannot race into
// duplicate lots. A merge keeps the existing expiration date and only sums
// the quantity.
//
// # Shelf-life Estimation
//
// When a detection carries no shelf life, the estimate subpackage resolves
// one from an ordered keyword table (first substring match wins), falling
// back to 14 days.
//
// # Components
//
//   - Repository: GORM data access, including the transactional MergeOrInsert.
//   - Reconciler: per-detection validation and merge-or-insert orchestration.
//   - Service: CRUD operations and reconciliation entry point.
//   - Handler: Fiber routes under /api/items.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET    /api/items                   : list (search, sorted)
//   - POST   /api/items                   : manual add
//   - DELETE /api/items/:id               : decrement or delete
//   - POST   /api/items/:id/increment    : increment
//   - PATCH  /api/items/:id/update_expiry : overwrite expiration date
package inventory
