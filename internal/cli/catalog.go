package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"offersheet-cli/internal/catalog"
	"offersheet-cli/internal/diag"
	"offersheet-cli/internal/model"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage the local catalog database",
	}
	cmd.AddCommand(newCatalogSeedCmd(app))
	cmd.AddCommand(newCatalogSearchCmd(app))
	return cmd
}

func newCatalogSeedCmd(app *App) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog database with fixture products",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := catalog.OpenSQLite(app.DBPath)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.Seed(cmd.Context(), fixtureProducts(count)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products into %s\n", count, app.DBPath)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 40, "number of products to generate")
	return cmd
}

func newCatalogSearchCmd(app *App) *cobra.Command {
	var pages int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a paginated catalog search headlessly",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			f, err := catalog.OpenSQLite(app.DBPath)
			if err != nil {
				return err
			}
			defer f.Close()

			cat := catalog.New(f, app.PageSize, diag.New(app.LogPath))
			cat.Reset(query)
			for i := 0; i < pages && cat.HasMore(); i++ {
				if err := cat.LoadNextPage(cmd.Context()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, p := range cat.Products() {
				fmt.Fprintf(out, "%s  %s\n", p.RemoteID, p.Title)
				for _, v := range p.Variants {
					fmt.Fprintf(out, "    %-24s %8s\n", v.Title, v.Price.StringFixed(2))
				}
			}
			fmt.Fprintf(out, "-- %d products (hasMore=%v)\n", len(cat.Products()), cat.HasMore())
			return nil
		},
	}
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	return cmd
}

var fixtureNouns = []string{
	"Trail Shoe", "Road Shoe", "Rain Jacket", "Down Vest", "Wool Sock",
	"Running Cap", "Trek Pole", "Dry Bag", "Head Lamp", "Base Layer",
}

var fixtureVariants = []string{"S", "M", "L", "XL"}

// fixtureProducts generates a deterministic catalog for demos and
// manual testing.
func fixtureProducts(count int) []model.Product {
	out := make([]model.Product, 0, count)
	for i := 0; i < count; i++ {
		noun := fixtureNouns[i%len(fixtureNouns)]
		rid := fmt.Sprintf("sku-%03d", i+1)
		p := model.Product{
			RemoteID: rid,
			Title:    fmt.Sprintf("%s %d", noun, i/len(fixtureNouns)+1),
			ImageRef: "images/" + strings.ReplaceAll(strings.ToLower(noun), " ", "-") + ".jpg",
		}
		for j, size := range fixtureVariants {
			p.Variants = append(p.Variants, model.Variant{
				RemoteID: fmt.Sprintf("v%d", j+1),
				Title:    size,
				Price:    decimal.New(int64(1500+i*75+j*200), -2),
			})
		}
		out = append(out, p)
	}
	return out
}
