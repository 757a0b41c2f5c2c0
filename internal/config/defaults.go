// Package config provides configuration loading and defaults for wrapped.
package config

// DefaultDataDirs are the storage roots searched for Claude Code data,
// in preference order.
var DefaultDataDirs = []string{"~/.claude", "~/.config/claude"}

// DefaultConfigDir is the default location for wrapped configuration.
const DefaultConfigDir = "~/.config/wrapped"

// DefaultDBName is the filename for the SQLite snapshot database.
const DefaultDBName = "wrapped.db"

// DefaultSSHConnectTimeout is the connection-establishment timeout, in
// seconds, for remote fetches.
const DefaultSSHConnectTimeout = 10

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
