package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jfabis/FluffyJobs/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write the default config file."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
}

type InitConfigCmd struct{}

type ShowConfigCmd struct{}

type PathConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	encoder := json.NewEncoder(ctx.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ctx.Config)
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}
