// Package config handles configuration loading, parsing, and validation
// from various sources (.env files, config files, environment variables). It
// provides type-safe access to the settings needed by the server, the CLI and
// the generation pipeline while keeping configuration details separate from
// business logic.
package config
