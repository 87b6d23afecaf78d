package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <email>",
	Short: "Fetch personalized movie recommendations",
	Long: `Fetch a recommendation batch for a user profile.

Examples:
  flicknest recommend alice@example.com
  flicknest recommend alice@example.com --profile kids`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		return fetchRecommendations(args[0], profile)
	},
}

func init() {
	recommendCmd.Flags().StringP("profile", "p", "main", "Profile name within the account")
}

func fetchRecommendations(email, profile string) error {
	params := url.Values{}
	params.Set("email", email)
	params.Set("profile_name", profile)

	endpoint := apiURL + "/api/v1/recommendations?" + params.Encode()

	body, err := getJSON(endpoint)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Recommendations []struct {
			Title          string  `json:"title"`
			Genres         string  `json:"genres"`
			PredictedScore float64 `json:"predicted_score"`
			MatchReason    string  `json:"match_reason"`
		} `json:"recommendations"`
		Meta struct {
			Mode  string `json:"mode"`
			Count int    `json:"count"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("Mode: %s (%d recommendations)\n\n", resp.Meta.Mode, resp.Meta.Count)
	for i, rec := range resp.Recommendations {
		fmt.Printf("%2d. %s [%s]\n", i+1, rec.Title, rec.Genres)
		fmt.Printf("    score %.3f — %s\n", rec.PredictedScore, rec.MatchReason)
	}
	return nil
}

// getJSON performs a GET and returns the body, treating non-2xx as errors.
func getJSON(endpoint string) ([]byte, error) {
	resp, err := http.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "%s\n", string(body))
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return body, nil
}
