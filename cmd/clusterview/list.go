package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/aryannaik/clusterview/internal/config"
	"github.com/aryannaik/clusterview/internal/controller"
	"github.com/aryannaik/clusterview/internal/loader"
	"github.com/aryannaik/clusterview/internal/render"
	"github.com/aryannaik/clusterview/internal/state"
)

func newListCmd(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [keyword]",
		Short: "Print the clusters matching a keyword",
		Example: heredoc.Doc(`
			# All clusters as a table
			$ clusterview list

			# Clusters with a domain containing "shop", as JSON
			$ clusterview list shop --format json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "html", "json":
			default:
				return fmt.Errorf("unknown format %q (want text, html or json)", format)
			}

			var keyword string
			if len(args) > 0 {
				keyword = args[0]
			}

			src := loader.NewSource(cfg.Source)
			store := state.NewStore()
			renderer := render.NewRenderer(thumbnailPrefix(cfg.ThumbnailDir, src))

			var rows render.RowSet
			list := controller.NewList(store, renderer, controller.StaticKeyword(keyword), &rows)
			controller.Bootstrap(cmd.Context(), src, store, list)

			return writeRows(cmd.OutOrStdout(), format, rows.Rows())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, html or json")

	return cmd
}

func writeRows(w io.Writer, format string, rows []render.Row) error {
	switch format {
	case "html":
		return render.WriteRowsHTML(w, rows)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		_, err := fmt.Fprintln(w, render.TextTable(rows))
		return err
	}
}
