package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/docuchat/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. Duration fields are expressed in seconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP    string `json:"endpoint_addr_http"`
	GeminiAPIKey        string `json:"gemini_api_key"`
	GeminiBaseURL       string `json:"gemini_base_url"`
	GeminiModel         string `json:"gemini_model"`
	StoreDisplayName    string `json:"store_display_name"`
	StoreIDFile         string `json:"store_id_file"`
	UploadDir           string `json:"upload_dir"`
	MetaFile            string `json:"meta_file"`
	AdminUsername       string `json:"admin_username"`
	AdminPassword       string `json:"admin_password"`
	SessionSecret       string `json:"session_secret"`
	SessionValiditySecs int    `json:"session_validity_secs"`
	PollIntervalSecs    int    `json:"poll_interval_secs"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// If it is not set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics. Empty string fields and zero
// durations in the file leave the corresponding Config values untouched.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlay := []struct {
		dst *string
		src string
	}{
		{&config.EndpointAddrHTTP, c.EndpointAddrHTTP},
		{&config.GeminiAPIKey, c.GeminiAPIKey},
		{&config.GeminiBaseURL, c.GeminiBaseURL},
		{&config.GeminiModel, c.GeminiModel},
		{&config.StoreDisplayName, c.StoreDisplayName},
		{&config.StoreIDFile, c.StoreIDFile},
		{&config.UploadDir, c.UploadDir},
		{&config.MetaFile, c.MetaFile},
		{&config.AdminUsername, c.AdminUsername},
		{&config.AdminPassword, c.AdminPassword},
		{&config.SessionSecret, c.SessionSecret},
	}
	for _, o := range overlay {
		if o.src != "" {
			*o.dst = o.src
		}
	}

	if c.SessionValiditySecs > 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValiditySecs) * time.Second
	}
	if c.PollIntervalSecs > 0 {
		config.PollInterval = time.Duration(c.PollIntervalSecs) * time.Second
	}
}
