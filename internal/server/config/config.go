// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the DocuChat server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - GeminiAPIKey: credential for the Generative Language API.
//   - GeminiBaseURL: API base URL (overridable for tests).
//   - GeminiModel: model used for grounded generation.
//   - StoreDisplayName: display name used when provisioning the document store.
//   - StoreIDFile: local file persisting the provisioned store identifier.
//   - UploadDir: directory keeping retained copies of uploaded files.
//   - MetaFile: local JSON file holding upload metadata records.
//   - AdminUsername / AdminPassword: shared admin credential for the upload gate.
//   - SessionSecret: HMAC secret for signing session tokens (HS256). Do not use
//     test defaults in prod.
//   - SessionValidityDuration: session token lifetime.
//   - PollInterval: fixed wait between indexing-operation status checks.
type Config struct {
	EndpointAddrHTTP        string
	GeminiAPIKey            string
	GeminiBaseURL           string
	GeminiModel             string
	StoreDisplayName        string
	StoreIDFile             string
	UploadDir               string
	MetaFile                string
	AdminUsername           string
	AdminPassword           string
	SessionSecret           string
	SessionValidityDuration time.Duration
	PollInterval            time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.GeminiBaseURL = "https://generativelanguage.googleapis.com"
	c.GeminiModel = "gemini-2.5-flash"
	c.StoreDisplayName = "DocuChat Document Store"
	c.StoreIDFile = "store_id.txt"
	c.UploadDir = "uploads"
	c.MetaFile = "uploaded_docs.json"
	c.AdminUsername = "admin"
	c.AdminPassword = "password123"
	c.SessionSecret = "change_me_please"
	c.SessionValidityDuration = 12 * time.Hour
	c.PollInterval = 2 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
