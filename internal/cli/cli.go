// Package cli implements the mealdb command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/mealdb/internal/config"
	"github.com/samvad-hq/mealdb/internal/logger"
	"github.com/samvad-hq/mealdb/pkg/mealdb"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	cfg     *config.Config
	logOut  io.Writer
	baseURL string
	timeout time.Duration
	verbose bool
}

// New creates a CLI that reads defaults from cfg and logs to logOut.
func New(cfg *config.Config, logOut io.Writer) *CLI {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &CLI{cfg: cfg, logOut: logOut}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mealdb",
		Short:        "Query TheMealDB recipe API",
		Long:         `mealdb runs single queries against TheMealDB and prints the result as JSON. A query that matches nothing prints null.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.baseURL, "base-url", c.cfg.MealDBBaseURL, "API base URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", c.cfg.MealDBTimeout, "request timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.letterCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.listCommand())

	return root
}

// client builds an API client from the resolved flags.
func (c *CLI) client() (*mealdb.Client, error) {
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logger.Init(&config.Config{LogLevel: level}, c.logOut)
	if err != nil {
		return nil, err
	}
	return mealdb.New(mealdb.Options{
		BaseURL:   c.baseURL,
		Timeout:   c.timeout,
		UserAgent: c.cfg.MealDBUserAgent,
	}, nil, log), nil
}

// writeResult prints v as indented JSON. A no-results error prints null
// and is not treated as a failure.
func writeResult(w io.Writer, v any, err error) error {
	if errors.Is(err, mealdb.ErrNoResults) {
		_, werr := io.WriteString(w, "null\n")
		return werr
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
