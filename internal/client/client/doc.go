// Package client opens the backends the GophShelf CLI talks to.
//
// # Overview
//
//  1. InitDatabase opens the local SQLite database and applies the embedded
//     goose migrations; NewRepositories builds the preference repositories
//     on top of it.
//  2. OpenRemote opens the PostgreSQL database that holds accounts and
//     documents through the pgx stdlib driver.
//  3. NewObjectStore builds the S3 or Azure Blob store selected by the
//     configuration.
//
// # Error Handling
//
// ErrUnknownBackend is returned for an unsupported storage backend name.
// Other errors are wrapped driver or SDK errors.
package client
