// Package cli implements the orbit command-line interface.
//
// Commands:
//   - layout: graph file → layout JSON
//   - visualize: layout JSON → SVG, PNG, PDF or DOT
//   - render: graph file → artifacts in one step
//   - inspect: interactive table of a layout's nodes and edges
//   - serve: run the HTTP API
//   - cache: clear or locate the local cache
//
// Settings come from the TOML config file (see package config), then
// command-line flags.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/buildinfo"
	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/config"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

// appName is the binary name used in help and suggested commands.
const appName = "orbit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Orbit lays out graphs on a circle with curved edges",
		Long: `Orbit places the nodes of a graph on a circle, giving each node an arc
proportional to its value, and bends edges into quadratic curves.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/orbit/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	}
	r := pipeline.NewRunner(backend, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache picks Redis when configured, the file cache otherwise. An
// unusable file cache directory disables caching instead of failing.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, url)
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the layout options shared by layout and render.
type layoutFlags struct {
	cmd          *cobra.Command
	width        float64
	height       float64
	margin       float64
	curveFormula string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "space between frame and circle")
	cmd.Flags().StringVar(&f.curveFormula, "curve-formula", pipeline.DefaultCurveFormula, "control point formula: signed, legacy")
}

// apply overrides opts with the flags set on the command line.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	if changed(f.cmd, "width") {
		opts.Width = f.width
	}
	if changed(f.cmd, "height") {
		opts.Height = f.height
	}
	if changed(f.cmd, "margin") {
		opts.Margin = f.margin
	}
	if changed(f.cmd, "curve-formula") {
		opts.CurveFormula = f.curveFormula
	}
}

// renderFlags are the render options shared by visualize and render.
type renderFlags struct {
	cmd        *cobra.Command
	formats    string
	style      string
	engine     string
	nodeRadius float64
	labels     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, outline")
	cmd.Flags().StringVar(&f.engine, "engine", pipeline.DefaultEngine, "svg engine: native, graphviz")
	cmd.Flags().Float64Var(&f.nodeRadius, "node-radius", pipeline.DefaultNodeRadius, "node circle radius")
	cmd.Flags().BoolVar(&f.labels, "labels", true, "draw node labels")
}

// apply overrides opts with the flags set on the command line.
func (f *renderFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(f.formats)
	if changed(f.cmd, "style") {
		opts.Style = f.style
	}
	if changed(f.cmd, "engine") {
		opts.Engine = f.engine
	}
	if changed(f.cmd, "node-radius") {
		opts.NodeRadius = f.nodeRadius
	}
	if changed(f.cmd, "labels") {
		opts.ShowLabels = f.labels
	}
}

func changed(cmd *cobra.Command, name string) bool {
	return cmd != nil && cmd.Flags().Changed(name)
}

// options merges config and flags into pipeline options. Either flag set
// may be nil.
func (c *CLI) options(lf *layoutFlags, rf *renderFlags) pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger
	if lf != nil {
		lf.apply(&opts)
	}
	if rf != nil {
		rf.apply(&opts)
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
