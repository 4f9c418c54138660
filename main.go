package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case versionMode:
		fmt.Println("nesapu", version)
	case infoMode:
		traceInfos(cli.Info.TracePath)
	case playMode:
		cfg := loadConfig(cli.Config)
		if cli.Play.Backend != "" {
			cfg.Audio.Backend = cli.Play.Backend
		}
		if cli.Play.Rate > 0 {
			cfg.Audio.SampleRate = cli.Play.Rate
		}
		checkf(play(cfg, cli.Play), "playback failed")
	}
}
