// Package api exposes a family tree over HTTP.
//
// The handlers are a thin adapter over [pipeline.Runner]: requests are
// decoded into drafts and patches, the runner applies them, and the
// resulting member, graph and positions are returned as JSON.
//
// # Routes
//
//	GET   /healthz
//	GET   /api/version
//	GET   /api/members
//	POST  /api/members                 add a member (root, parent, child, spouse)
//	GET   /api/members/{id}            member plus the relations that may be added
//	PATCH /api/members/{id}            edit non-relation fields
//	GET   /api/edges/{id}              describe the relationship behind an edge
//	GET   /api/graph?highlight=        derived diagram graph
//	GET   /api/layout?highlight=       positioned nodes
//	POST  /api/layout/reset            forget remembered positions
//	GET   /api/search?q=               name search with focus points
//	GET   /api/render.{format}         svg, png, jpg, dot or json
//	GET   /api/export                  download the tree as a family file
//	POST  /api/import                  replace the tree with a family file
//
// # Errors
//
// Failures are returned as
//
//	{"error": {"code": "AGE_GAP", "message": "...", "field": "birthYear", "requestId": "..."}}
//
// with the status chosen from the error code: 422 for rejected drafts,
// 400 for malformed requests, 404 for unknown members, 409 for a second root.
package api
