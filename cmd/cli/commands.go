package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/mauv0809/crispy-paddle/internal/league"
	"github.com/mauv0809/crispy-paddle/internal/pubsub"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(createPlayerCmd)
	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(createSiteCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(recordGameCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(createTournamentCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(publishGamesCmd)

	leaderboardCmd.Flags().Int("limit", 10, "Number of players to list")
	leaderboardCmd.Flags().Int("min-rating", 0, "Only list players rated above this")
	gamesCmd.Flags().String("site", "", "Filter games by site id")
	gamesCmd.Flags().String("player", "", "Filter games by player id")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "List the top players by rating",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		path := "/api/players?limit=" + strconv.Itoa(limit)
		if minRating, _ := cmd.Flags().GetInt("min-rating"); minRating > 0 {
			path += "&min_rating=" + strconv.Itoa(minRating)
		}
		return performGetRequest(path)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <player-id>",
	Short: "Show a player's profile and recent games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players/" + args[0])
	},
}

var createPlayerCmd = &cobra.Command{
	Use:   "create-player <username> <email> <site-id>",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/players", map[string]any{
			"username": args[0],
			"email":    args[1],
			"site_id":  args[2],
		})
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List all sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/sites")
	},
}

var createSiteCmd = &cobra.Command{
	Use:   "create-site <name> <location>",
	Short: "Register a new site (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/sites", map[string]any{
			"name":     args[0],
			"location": args[1],
		})
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List recent games",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/games"
		if siteID, _ := cmd.Flags().GetString("site"); siteID != "" {
			path += "?site_id=" + siteID
		} else if playerID, _ := cmd.Flags().GetString("player"); playerID != "" {
			path += "?player_id=" + playerID
		}
		return performGetRequest(path)
	},
}

var recordGameCmd = &cobra.Command{
	Use:   "record-game <site-id> <score1> <score2> <player-id>...",
	Short: "Record a game result (2 or 4 player ids)",
	Args:  cobra.MinimumNArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		score1, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[1], err)
		}
		score2, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[2], err)
		}
		return performPostRequest("/api/games", league.GameReport{
			SiteID:    args[0],
			Scores:    []int{score1, score2},
			PlayerIDs: args[3:],
		})
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List recent tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/tournaments")
	},
}

var createTournamentCmd = &cobra.Command{
	Use:   "create-tournament <name> <site-id> <date> <player-id>...",
	Short: "Register a tournament (admin)",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/tournaments", map[string]any{
			"name":       args[0],
			"site_id":    args[1],
			"date":       args[2],
			"player_ids": args[3:],
		})
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var publishGamesCmd = &cobra.Command{
	Use:   "publish-games <project-id> <reports-file.json>",
	Short: "Publish a batch of game reports to the ingestion topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read reports file: %w", err)
		}
		var reports []league.GameReport
		if err := json.Unmarshal(raw, &reports); err != nil {
			return fmt.Errorf("failed to parse reports file: %w", err)
		}

		client, teardown := pubsub.New(args[0])
		defer teardown()
		if err := client.SendMessage(string(pubsub.EventGameReports), reports); err != nil {
			return err
		}
		fmt.Printf("Published %d game reports\n", len(reports))
		return nil
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
