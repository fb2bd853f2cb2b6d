// Package config loads runtime configuration for the smarttask CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or --config. JSON and YAML are
//     recognised by extension.
//  3. Environment variables with the SMARTTASK_ prefix.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a, --api-url string          base URL of the task API
//	    --auth-url string         base URL of the auth API
//	    --db string               local state database file
//	    --timeout duration        per-request timeout
//	    --draft-reset-delay dur   voice draft lifetime
//	    --debug                   debug logging
//	    --forms                   interactive forms on a terminal
//
// # File schema
//
// Durations accept Go duration strings:
//
//	{
//	  "api_url": "http://localhost:5000",
//	  "auth_url": "https://auth.example.com",
//	  "db": "smarttask.db",
//	  "timeout": "10s",
//	  "draft_reset_delay": "5s"
//	}
package config
