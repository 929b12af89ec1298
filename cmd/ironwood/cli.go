package main

import (
	"time"

	"github.com/alecthomas/kong"

	"github.com/TheServer-lab/ironwood/internal/buildinfo"
)

// CLI is the top-level command-line surface: `ironwood <file.irw> [args...]`.
// Extra positional arguments become the script's `args` global.
type CLI struct {
	Script string   `arg:"" help:"Ironwood source file to run." type:"existingfile"`
	Args   []string `arg:"" optional:"" help:"Arguments exposed to the script as the 'args' global."`

	Config string `help:"Optional YAML file seeding log/timeout defaults." type:"path"`

	Timeout time.Duration `help:"Abort the script if it runs longer than this (0 disables)." default:"0"`

	LogLevel  string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log output format." enum:"text,json" default:"text"`

	Pprof string `help:"Enable profiling for this run." enum:",cpu,mem,block,trace" default:""`

	Version kong.VersionFlag `help:"Print version and exit."`
}

var versionVars = kong.Vars{"version": buildinfo.String()}
