package elo_test

import (
	"testing"

	"github.com/mauv0809/crispy-paddle/internal/elo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedScore(t *testing.T) {
	assert.Equal(t, 0.5, elo.ExpectedScore(1200, 1200))
	assert.Equal(t, 0.5, elo.ExpectedScore(1500, 1500))

	assert.Greater(t, elo.ExpectedScore(1400, 1200), 0.5)
	assert.Less(t, elo.ExpectedScore(1000, 1200), 0.5)

	assert.InDelta(t, 0.76, elo.ExpectedScore(1400, 1200), 0.01)
	assert.InDelta(t, 0.24, elo.ExpectedScore(1000, 1200), 0.01)
}

func TestExpectedScoreSymmetry(t *testing.T) {
	pairs := [][2]float64{{1200, 1200}, {1400, 1200}, {1000, 1750}, {800, 2400}}
	for _, pair := range pairs {
		sum := elo.ExpectedScore(pair[0], pair[1]) + elo.ExpectedScore(pair[1], pair[0])
		assert.InDelta(t, 1.0, sum, 1e-9, "expected scores for %v should sum to 1", pair)
	}
}

func TestNewRating(t *testing.T) {
	// A draw against an equal opponent changes nothing.
	assert.Equal(t, 1200, elo.NewRating(1200, 1200, 0.5, elo.DefaultKFactor))

	assert.Equal(t, 1216, elo.NewRating(1200, 1200, 1.0, elo.DefaultKFactor))
	assert.Equal(t, 1184, elo.NewRating(1200, 1200, 0.0, elo.DefaultKFactor))
}

func TestUpdateSinglesGame(t *testing.T) {
	p1, p2 := elo.UpdateSinglesGame(1200, 1200, true)
	assert.Equal(t, 1216, p1)
	assert.Equal(t, 1184, p2)

	// Swapping the winner flips the pair.
	p1, p2 = elo.UpdateSinglesGame(1200, 1200, false)
	assert.Equal(t, 1184, p1)
	assert.Equal(t, 1216, p2)

	// The favourite gains fewer than 16 points for an expected win.
	p1, p2 = elo.UpdateSinglesGame(1400, 1200, true)
	assert.Greater(t, p1, 1400)
	assert.Less(t, p2, 1200)
	assert.Less(t, p1-1400, 16)

	// The underdog gains more than 16 for an upset.
	p1, p2 = elo.UpdateSinglesGame(1200, 1400, true)
	assert.Greater(t, p1-1200, 16)
	assert.Less(t, p2, 1400)
}

func TestUpdateDoublesGame(t *testing.T) {
	t.Run("equal teams", func(t *testing.T) {
		team1, team2 := elo.UpdateDoublesGame([2]int{1200, 1200}, [2]int{1200, 1200}, true)
		assert.Greater(t, team1[0], 1200)
		assert.Greater(t, team1[1], 1200)
		assert.Less(t, team2[0], 1200)
		assert.Less(t, team2[1], 1200)
	})

	t.Run("mixed team gains split by rating", func(t *testing.T) {
		// Both teams average 1200, but the 1400-rated winner gains less
		// than their 1000-rated partner.
		team1, team2 := elo.UpdateDoublesGame([2]int{1400, 1000}, [2]int{1200, 1200}, true)
		assert.Greater(t, team1[0], 1400)
		assert.Greater(t, team1[1], 1000)
		assert.Less(t, team1[0]-1400, team1[1]-1000)
		assert.Less(t, team2[0], 1200)
		assert.Less(t, team2[1], 1200)
	})
}

func TestProcessGameResultsSingles(t *testing.T) {
	game := elo.GameResult{
		PlayerIDs: []string{"p1", "p2"},
		Scores:    []int{21, 15},
	}
	ratings := map[string]int{"p1": 1200, "p2": 1200}

	updated := elo.ProcessGameResults(game, ratings)
	assert.Equal(t, 1216, updated["p1"])
	assert.Equal(t, 1184, updated["p2"])

	// Input map stays untouched.
	assert.Equal(t, 1200, ratings["p1"])
	assert.Equal(t, 1200, ratings["p2"])
}

func TestProcessGameResultsSeedsUnknownPlayers(t *testing.T) {
	game := elo.GameResult{
		PlayerIDs: []string{"p1", "p2"},
		Scores:    []int{11, 9},
	}

	updated := elo.ProcessGameResults(game, map[string]int{})
	require.Contains(t, updated, "p1")
	require.Contains(t, updated, "p2")
	// Both seeded at 1200 before the update, so the result is the
	// equal-ratings exchange.
	assert.Equal(t, 1216, updated["p1"])
	assert.Equal(t, 1184, updated["p2"])
}

func TestProcessGameResultsDoubles(t *testing.T) {
	game := elo.GameResult{
		PlayerIDs: []string{"p1", "p2", "p3", "p4"},
		Scores:    []int{15, 21},
	}
	ratings := map[string]int{"p1": 1200, "p2": 1200, "p3": 1200, "p4": 1200}

	updated := elo.ProcessGameResults(game, ratings)
	// Team two (p3, p4) won.
	assert.Less(t, updated["p1"], 1200)
	assert.Less(t, updated["p2"], 1200)
	assert.Greater(t, updated["p3"], 1200)
	assert.Greater(t, updated["p4"], 1200)
}

func TestProcessGameResultsKeepsBystanders(t *testing.T) {
	game := elo.GameResult{
		PlayerIDs: []string{"p1", "p2"},
		Scores:    []int{21, 15},
	}
	ratings := map[string]int{"p1": 1300, "p2": 1100, "spectator": 1500}

	updated := elo.ProcessGameResults(game, ratings)
	assert.Equal(t, 1500, updated["spectator"])
}
