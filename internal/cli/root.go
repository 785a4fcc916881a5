package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"offersheet-cli/internal/catalog"
	"offersheet-cli/internal/diag"
	"offersheet-cli/internal/tui"
)

type App struct {
	DBPath           string
	PageSize         int
	CascadeDiscounts bool
	LogPath          string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "offersheet",
		Short:        "Build ordered, discounted offer sheets from a vendor catalog",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive sheet builder
  offersheet

  # Seed a local catalog to browse
  offersheet catalog seed --count 40

  # Scriptable catalog search
  offersheet catalog search shoe --pages 2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "offersheet.sqlite", "path to the local catalog database")
	cmd.PersistentFlags().IntVar(&app.PageSize, "page-size", catalog.DefaultPageSize, "catalog page size")
	cmd.PersistentFlags().BoolVar(&app.CascadeDiscounts, "cascade-discounts", false, "setting a product discount also stamps its variants")
	cmd.PersistentFlags().StringVar(&app.LogPath, "log", "", "diagnostics log file (default: $OFFERSHEET_LOG)")

	cmd.AddCommand(newCatalogCmd(app))
	return cmd
}

func runTUI(app *App) error {
	fetcher, err := catalog.OpenSQLite(app.DBPath)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	return tui.Run(tui.Options{
		Fetcher:          fetcher,
		PageSize:         app.PageSize,
		CascadeDiscounts: app.CascadeDiscounts,
		Diag:             diag.New(app.LogPath),
	})
}
