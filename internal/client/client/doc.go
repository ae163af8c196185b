// Package client contains the client-side building blocks for ShopNet.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the identity, settings, product, notification and image endpoints.
//  2. A REST implementation (see HTTPClient) that attaches the bearer token
//     to every request and maps HTTP statuses to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrConflict. Any other rejection is a *ServerError carrying the status and
// the server's message.
package client
