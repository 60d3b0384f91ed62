// Package server holds the paste-UI server configuration.
//
// While the serve command handles startup, this package defines the
// configuration structure for server settings: the loopback listen address
// and the default target label for pasted reports.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings.
package server
