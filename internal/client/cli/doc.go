// Package cli provides the usershelf command-line front end.
//
// It wires configuration, the local store, the remote fetcher and the user
// service, then either runs an interactive REPL (when stdin is a terminal)
// or performs a single load and prints the result.
//
// REPL commands:
//   - list    show the users, loading them if needed
//   - retry   repeat the last failed load
//   - clear   empty the local store
//   - status  show the load state and store details
//   - help    show available commands
//   - exit    leave the program
//
// Each load moves a Loader through idle → loading → success | error; see
// Loader and State.
package cli
