// Package api provides the HTTP REST API for the contacts service.
//
// It exposes CRUD operations over the contact store plus export and stats
// endpoints, following a single synchronous pass per request:
// decode → validate → one repository call → encode.
//
// The server follows the standard lifecycle pattern:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Error responses use a fixed JSON shape ({status, code, message}) with a
// stable mapping: validation failures are 422, duplicate emails 409,
// unknown IDs 404.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
