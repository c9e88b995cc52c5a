// Package cli provides the interactive Bookshelf command-line client.
//
// It wires configuration, the HTTP API client and a read-eval-print loop.
// The logged-in user is an explicit *client.Session held by App: Login
// replaces it and Logout resets it to an anonymous one.
//
// Commands:
//   - register, login, logout, whoami, unregister
//   - book <id|#n>, search <query>
//   - reviews [mine|<bookId>], review <bookId|#n>, edit <id>, delete <id>
//   - help, exit
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
