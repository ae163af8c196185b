// Package config loads runtime configuration for the ShopNet CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. SHOPNET_CLIENT_* environment variables, after an optional .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the ShopNet REST server
//	-f string   path of the local session database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "session_db_path": "shopnet-session.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
