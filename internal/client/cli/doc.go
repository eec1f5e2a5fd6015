// Package cli provides the interactive GophShelf command-line client.
//
// It wires configuration, the local preferences database, the remote
// account and document database, the object store and the view-models,
// then runs a REPL whose commands play the role of screens.
//
// Key features:
//   - Register / Login / Logout
//   - List, search, download and delete books
//   - Upload a book file with title and author
//   - Read a downloaded TXT, EPUB or PDF page by page
//   - Show the profile, change the name, upload or save the avatar
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
