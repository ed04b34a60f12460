package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/index"
	"github.com/MrSnakeDoc/icebreaker/internal/sources/stylefile"
)

func newStylesCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the writing styles the server would offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := e.loadConfig()
			styles := domain.DefaultStyles()
			if cfg.StylesFile != "" {
				f, err := stylefile.NewLoader(cfg.StylesFile).Load()
				if err != nil {
					return fmt.Errorf("styles file: %w", err)
				}
				if styles, err = stylefile.NewMapper().MapStyles(f, styles); err != nil {
					return fmt.Errorf("styles file: %w", err)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL")
			for _, s := range index.NewMemoryIndex(styles).GetAllStyles() {
				fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Label)
			}
			return tw.Flush()
		},
	}
}
