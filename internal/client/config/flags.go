package config

import (
	"flag"
	"os"

	"github.com/sireesha-siri/geotag-plants/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string   base URL of the plant-data service
//	-m string   path to the persisted mirror file
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "b", cfg.ServerBaseURL, "base URL of the plant-data service")
	fs.StringVar(&cfg.MirrorPath, "m", cfg.MirrorPath, "path to the persisted mirror file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
