// Package config handles configuration loading for stormgate.
//
// # Overview
//
// Configuration is loaded from YAML or TOML files with environment variable
// expansion. The package provides validation and sensible defaults; running
// without a config file at all is supported via Default.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from STORMGATE_CONFIG environment variable
//  2. ~/.config/stormgate/stormgate.yaml
//
// Files ending in .toml are parsed as TOML, everything else as YAML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  token: "${MCP_AUTH_TOKEN}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "localhost:8080"
//
// Authentication:
//
//	auth:
//	  mode: "static"          # static (default) or jwt
//	  token: "..."            # static mode; falls back to MCP_AUTH_TOKEN,
//	                          # then the built-in default
//	  jwt_secret: "..."       # jwt mode only
//
// Upstream weather provider:
//
//	upstream:
//	  base_url: "https://api.weather.gov"
//	  user_agent: "weather-app/1.0"
//	  timeout: "15s"
//
// Website probe:
//
//	probe:
//	  timeout: "10s"
//
// Tailscale serving (optional):
//
//	tailscale:
//	  enabled: true
//	  hostname: "stormgate"
//	  funnel: false
package config
