// Package database manages the Postgres connection for the alert archive.
package database
