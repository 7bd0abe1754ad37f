// Package config handles configuration loading, parsing, and validation
// from a .env file, an optional config file and JOURNAL_ environment
// variables. Environment variables win over the file, the file wins over
// defaults.
package config
