package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse the movie catalog",
	Long:  "Commands for browsing the catalog through the API's movie proxy endpoints",
}

var moviesRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Fetch a small random sample of movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fetchMovies(apiURL + "/api/v1/movies/random")
	},
}

var moviesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Long: `Search the catalog by title.

Examples:
  flicknest movies search "heat"
  flicknest movies search "blade runner" --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fetchMovies(apiURL + "/api/v1/movies/search/" + url.PathEscape(args[0]))
	},
}

func init() {
	moviesCmd.AddCommand(moviesRandomCmd)
	moviesCmd.AddCommand(moviesSearchCmd)
}

func fetchMovies(endpoint string) error {
	body, err := getJSON(endpoint)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Count  int `json:"count"`
		Movies []struct {
			Title string      `json:"title"`
			Year  interface{} `json:"year"`
		} `json:"movies"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("%d movies\n", resp.Count)
	for _, m := range resp.Movies {
		if m.Year != nil {
			fmt.Printf("  %s (%v)\n", m.Title, m.Year)
		} else {
			fmt.Printf("  %s\n", m.Title)
		}
	}
	return nil
}
