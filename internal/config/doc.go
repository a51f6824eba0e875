// Package config handles configuration loading for folio-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation of required fields.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${FOLIO_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	auth:
//	  session_ttl: "1h"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/folio/folio.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${FOLIO_JWT_SECRET}"  # required
//	  session_ttl: "1h"                  # defaults to 1h when omitted
//
// Turnstile challenge verification (login bot protection):
//
//	turnstile:
//	  secret: "${TURNSTILE_SECRET}"
//	  verify_url: ""  # defaults to the Cloudflare siteverify endpoint
//
// Upload signing:
//
//	uploads:
//	  imagekit_private_key: "${IMAGEKIT_PRIVATE_KEY}"
//
// Tailscale:
//
//	tailscale:
//	  enabled: false
//	  hostname: "folio"
//	  auth_key: "${TS_AUTHKEY}"
//	  funnel: false
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load("/etc/folio/gateway.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
