package config

import "os"

// parseEnv overlays Config fields from environment variables. These are the
// deployment-provided secrets; unset variables leave the current values
// untouched.
//
// Recognized variables:
//
//	SERVER_ADDR      HTTP bind address
//	GEMINI_API_KEY   Generative Language API credential
//	GEMINI_BASE_URL  API base URL
//	GEMINI_MODEL     model name
//	ADMIN_USERNAME   admin login
//	ADMIN_PASSWORD   admin password
//	SESSION_SECRET   session-signing secret
func parseEnv(config *Config) {
	overlay := []struct {
		dst *string
		key string
	}{
		{&config.EndpointAddrHTTP, "SERVER_ADDR"},
		{&config.GeminiAPIKey, "GEMINI_API_KEY"},
		{&config.GeminiBaseURL, "GEMINI_BASE_URL"},
		{&config.GeminiModel, "GEMINI_MODEL"},
		{&config.AdminUsername, "ADMIN_USERNAME"},
		{&config.AdminPassword, "ADMIN_PASSWORD"},
		{&config.SessionSecret, "SESSION_SECRET"},
	}
	for _, o := range overlay {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}
