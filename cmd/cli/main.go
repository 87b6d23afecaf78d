package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL string = "http://localhost:8090"
	output string = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "flicknest",
	Short: "Flicknest CLI - Query the recommendation API",
	Long: `Flicknest CLI provides command-line access to the recommendation API.
Fetch personalized recommendations, search the catalog, and inspect
click-through metrics.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(moviesCmd)
	rootCmd.AddCommand(ctrCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
