// Package appwrite implements store.Store and store.DocumentWriter over the
// REST API of an Appwrite-compatible platform, plus the user and function
// endpoints used by the vault sync.
//
// Requests authenticate with the X-Appwrite-Project and X-Appwrite-Key
// headers. List endpoints are paged with limit/offset queries encoded in the
// JSON query form.
//
// # Error mapping
//
//   - 401, 403, 429, 5xx and transport failures wrap store.ErrUnavailable.
//   - 404 wraps store.ErrNotFound.
//   - 409 wraps store.ErrConflict.
//
// Every error carries the platform's message when one is returned.
package appwrite
