// Package cli provides the interactive MovieKeeper command-line client.
//
// NewApp wires configuration, the key-value store, the cache, the catalog
// client and the services; App.Run starts the REPL, which blocks until the
// user exits. A stored session skips the login prompt.
//
// Commands: login, logout, list, refresh, show <id>, search <text>.
package cli
