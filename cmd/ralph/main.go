// Package main provides the CLI entry point for ralph.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/campreserv/ralph/internal/cli"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	fillVersionFromBuildInfo()
	cli.SetVersionInfo(version, commit, date)

	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrIterationFailed) {
			fmt.Fprintf(os.Stderr, "Ralph error: %v\n", err)
		}
		os.Exit(1)
	}
}

func fillVersionFromBuildInfo() {
	if version != "dev" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	commit, date = versionFromSettings(info.Settings)
}

func versionFromSettings(settings []debug.BuildSetting) (string, string) {
	var revision, buildDate string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			buildDate = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	c := "unknown"
	if len(revision) >= 7 {
		c = revision[:7]
		if dirty {
			c += "-dirty"
		}
	}

	d := "unknown"
	if buildDate != "" {
		d = buildDate
	}
	return c, d
}
