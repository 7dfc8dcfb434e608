package main

import (
	"strings"

	"tidydocs/internal/config"
	"tidydocs/pkg/fileops"
)

// commandContext carries the persistent flags shared by subcommands.
type commandContext struct {
	configFlag *string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// resolveRoot expands the optional positional directory argument, defaulting
// to the current directory.
func (c *commandContext) resolveRoot(args []string) string {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	return fileops.ExpandPath(dir)
}

// loadConfig resolves configuration for a target root, honoring --config.
func (c *commandContext) loadConfig(root string) (*config.Config, error) {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return config.LoadFrom(path)
		}
	}
	return config.Load(root)
}
