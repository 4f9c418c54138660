package main

import (
	"github.com/BurntSushi/toml"

	"nesapu/audio"
)

type Config struct {
	Audio audio.Config `toml:"audio"`
}

// loadConfig reads the toml configuration at path. An empty path yields the
// defaults; a path that exists but does not parse is a hard error.
func loadConfig(path string) Config {
	var cfg Config
	if path == "" {
		return cfg
	}
	_, err := toml.DecodeFile(path, &cfg)
	checkf(err, "failed to load config %s", path)
	return cfg
}
