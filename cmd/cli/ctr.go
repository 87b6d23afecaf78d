package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var ctrCmd = &cobra.Command{
	Use:   "ctr",
	Short: "Show click-through rates per recommendation source",
	Long: `Show click-through rates for each recommendation mode.

Examples:
  flicknest ctr
  flicknest ctr --period 7d`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		return fetchCTR(period)
	},
}

func init() {
	ctrCmd.Flags().String("period", "24h", "Reporting window: 24h, 7d or 30d")
}

func fetchCTR(period string) error {
	body, err := getJSON(apiURL + "/api/v1/recommendations/ctr?period=" + period)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Metrics []struct {
			Source      string  `json:"source"`
			Impressions int64   `json:"impressions"`
			Clicks      int64   `json:"clicks"`
			CTR         float64 `json:"ctr"`
		} `json:"metrics"`
		Period string `json:"period"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("CTR over %s:\n", resp.Period)
	for _, m := range resp.Metrics {
		fmt.Printf("  %-11s %6d impressions  %5d clicks  %6.2f%%\n",
			m.Source, m.Impressions, m.Clicks, m.CTR)
	}
	return nil
}
