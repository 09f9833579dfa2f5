package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/crispy-paddle/internal/database"
	"github.com/mauv0809/crispy-paddle/internal/league"
	"github.com/mauv0809/crispy-paddle/internal/metrics"
	"github.com/mauv0809/crispy-paddle/internal/store"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "seed.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	leagueSvc := league.New(store.New(db), metrics.NewMock())

	sites := make([]*league.Site, 0, 2)
	for _, s := range []struct{ name, location string }{
		{"Downtown Club", "12 Main St"},
		{"Riverside Hall", "3 Quay Rd"},
	} {
		site, err := leagueSvc.CreateSite(ctx, s.name, s.location)
		if err != nil {
			log.Fatalf("Failed to create site %s: %s", s.name, err)
		}
		sites = append(sites, site)
	}
	log.Info("Created sites", "count", len(sites))

	const numPlayers = 8
	players := make([]*league.Player, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		site := sites[i%len(sites)]
		username := fmt.Sprintf("seed_player_%d", i+1)
		email := fmt.Sprintf("seed%d@example.com", i+1)
		player, err := leagueSvc.CreatePlayer(ctx, username, email, site.ID, nil)
		if err != nil {
			log.Fatalf("Failed to create player %s: %s", username, err)
		}
		players = append(players, player)
	}
	log.Info("Created players", "count", len(players))

	const numGames = 200
	startTime := time.Now()
	for i := 0; i < numGames; i++ {
		site := sites[rand.Intn(len(sites))]
		perm := rand.Perm(len(players))
		participants := []string{players[perm[0]].ID, players[perm[1]].ID}
		if i%3 == 0 {
			participants = append(participants, players[perm[2]].ID, players[perm[3]].ID)
		}
		scores := []int{21, rand.Intn(20)}
		if rand.Intn(2) == 0 {
			scores[0], scores[1] = scores[1], scores[0]
		}
		gameDate := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		_, err := leagueSvc.RecordGame(ctx, league.GameReport{
			SiteID:    site.ID,
			PlayerIDs: participants,
			Scores:    scores,
			Date:      gameDate.Format(time.RFC3339),
		})
		if err != nil {
			log.Fatalf("Failed to record seeded game: %s", err)
		}
		if (i+1)%50 == 0 {
			log.Info("Recorded games", "completed", i+1, "total", numGames)
		}
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded the leaderboard.", "games", numGames, "duration", duration)
}
