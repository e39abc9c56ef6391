package config

import (
	"flag"
	"os"
)

// DetermineConfigPath resolves the config file from -config, then SKETCH_CONFIG,
// then a list of well-known locations. An empty result means defaults and
// environment only.
func DetermineConfigPath(fs *flag.FlagSet, args []string) string {
	var configPath string

	fs.StringVar(&configPath, "config", "", "path to config file")
	_ = fs.Parse(args)

	if configPath == "" {
		configPath = GetString("SKETCH_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/sketchrooms/config.yaml",
			"/app/config.yaml",
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
