package commands

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/lzvcup-scraper/internal/app"
	"github.com/spf13/cobra"
)

var regionsFlags struct {
	area       string
	jsonOutput bool
}

func init() {
	regionsCmd.Flags().StringVar(&regionsFlags.area, "area", "", "Area to inspect.")
	regionsCmd.Flags().BoolVar(&regionsFlags.jsonOutput, "json", false, "Print the region cards as JSON.")
	_ = regionsCmd.MarkFlagRequired("area")
}

var regionsCmd = &cobra.Command{
	Use:   "regions --area NAME",
	Short: "Prints the region cards parsed from one area page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		areas, err := selectAreas(rt.cfg.Areas, []string{regionsFlags.area})
		if err != nil {
			return err
		}

		scraper, err := app.NewScraper(cmd.Context(), rt.cfg, app.Options{DryRun: true, SkipGeocode: true}, rt.logger)
		if err != nil {
			return err
		}
		defer scraper.Close()

		cards, err := scraper.Service.RegionCards(cmd.Context(), areas[0])
		if err != nil {
			return fmt.Errorf("parse area %s: %w", areas[0].Name, err)
		}

		if regionsFlags.jsonOutput {
			raw, err := sonic.ConfigStd.MarshalIndent(cards, "", "  ")
			if err != nil {
				return fmt.Errorf("encode region cards: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(raw))
			return nil
		}

		t := newTable(os.Stdout)
		t.SetTitle(areas[0].Name)
		t.AppendHeader(table.Row{"region", "competition", "url"})
		for _, card := range cards {
			for _, link := range card.Competitions {
				t.AppendRow(table.Row{card.Region, link.Name, link.URL})
			}
			t.AppendRow(table.Row{card.Region, "sportshalls", card.SportshallsURL})
			t.AppendSeparator()
		}
		t.Render()
		return nil
	},
}
