// Package models defines the catalog records and local session types shared
// by the client, the cache and the CLI.
package models
