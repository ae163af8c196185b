// Package cli provides the interactive ShopNet command-line client.
//
// It wires configuration, the local session database, the REST client and
// an interactive REPL. On start the stored session is restored and checked
// against the server; every navigation then goes through the route guard,
// so a user without an account type is sent to account setup until the
// setup wizard completes.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
