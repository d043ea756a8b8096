package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aryannaik/clusterview/internal/config"
	"github.com/aryannaik/clusterview/internal/loader"
)

// version is set at build time via -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		log.Error("clusterview failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "clusterview",
		Short: "Browse clusters of related websites",
		Long: heredoc.Doc(`
			Loads a precomputed clusters.json (groups of related websites, each
			with a representative thumbnail) and shows it as a table that can be
			filtered by domain keyword.
		`),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.ApplyLogLevel()
		},
	}

	root.PersistentFlags().StringVarP(&cfg.Source, "source", "s", cfg.Source, "Directory or http(s) URL containing clusters.json")
	root.PersistentFlags().StringVar(&cfg.ThumbnailDir, "thumbnail-dir", cfg.ThumbnailDir, "Prefix prepended to thumbnail filenames")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newListCmd(cfg))

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})

	return root
}

// thumbnailPrefix resolves a relative thumbnail directory against a remote
// source so images load from the same place as clusters.json.
func thumbnailPrefix(dir string, src loader.Source) string {
	if strings.HasPrefix(dir, "http://") || strings.HasPrefix(dir, "https://") {
		return dir
	}
	if hs, ok := src.(*loader.HTTPSource); ok {
		return hs.BaseURL() + "/" + strings.TrimLeft(dir, "/")
	}
	return dir
}
