// Package config loads and validates application configuration.
//
// Configuration is read from a YAML file with three layers of precedence:
//
//  1. Hardcoded defaults
//  2. YAML file values
//  3. Environment variable overrides (CRMCORE_* prefix)
//
// Example config.yaml:
//
//	database:
//	  path: "./data/contacts.db"
//	  wal_mode: true
//	  busy_timeout: 5
//	api:
//	  host: "0.0.0.0"
//	  port: 8080
//	logging:
//	  level: "info"
//	  format: "json"
//
// Validation runs on every load; a config that fails validation is never
// returned to the caller.
package config
