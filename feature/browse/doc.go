// Package browse exposes a read-only HTTP view of the recovered catalog.
//
// It is the verification surface for recovery runs: after a restore, the
// album tree and file rows can be inspected and the stored bytes streamed
// back without standing up the full application.
//
// # Endpoints
//
//   - GET /albums             flat album list with file counts
//   - GET /albums/:slug       one album with its children and files
//   - GET /files/:id          file metadata
//   - GET /files/:id/content  the stored bytes, served with the row's MIME type
//
// The feature never writes. It implements loader.Feature and is registered
// by the serve command.
package browse
