package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL override
//	-p string   platform: web or native
//	-s string   path of the session store (native)
//	-l string   log level
//	-i int      order queue poll interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-s", "-l", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURLOverride, "a", cfg.BaseURLOverride, "backend base URL override")
	platform := fs.String("p", string(cfg.Platform), "platform: web or native")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "session store path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Platform = common.Platform(*platform)
	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
