package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docuchat/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-k string   Gemini API key
//	-m string   Gemini model name
//	-d string   upload directory
//	-f string   metadata file path
//	-i string   store identifier file path
//	-u string   admin username
//	-p string   admin password
//	-s string   session-signing secret
//	-w int      indexing poll interval, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The poll interval is accepted as an integer number of seconds and then
//     converted to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-m", "-d", "-f", "-i", "-u", "-p", "-s", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.GeminiAPIKey, "k", config.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "Gemini model name")
	fs.StringVar(&config.UploadDir, "d", config.UploadDir, "upload directory")
	fs.StringVar(&config.MetaFile, "f", config.MetaFile, "metadata file")
	fs.StringVar(&config.StoreIDFile, "i", config.StoreIDFile, "store identifier file")
	fs.StringVar(&config.AdminUsername, "u", config.AdminUsername, "admin username")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "admin password")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session-signing secret")

	pollInterval := fs.Int("w", int(config.PollInterval.Seconds()), "poll_interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PollInterval = time.Duration(*pollInterval) * time.Second
}
