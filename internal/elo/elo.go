// Package elo implements the rating math for the league. It is pure
// computation: no storage, no clock, no globals. Callers are expected to
// validate game data (participant counts, score pairs) before handing it in.
package elo

import "math"

const (
	// DefaultKFactor is the maximum number of points exchanged per game.
	DefaultKFactor = 32
	// DefaultRating is the starting rating for a player without history.
	DefaultRating = 1200
)

// ExpectedScore returns the logistic win probability for a player rated
// `rating` against an opponent rated `opponent`. Equal ratings yield exactly
// 0.5, and ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// NewRating computes a player's rating after a game. actual is 1 for a win,
// 0 for a loss (0.5 is accepted for a draw even though league games cannot
// end tied). The result is rounded half away from zero via math.Round.
func NewRating(rating, opponent int, actual float64, kFactor int) int {
	expected := ExpectedScore(float64(rating), float64(opponent))
	return int(math.Round(float64(rating) + float64(kFactor)*(actual-expected)))
}

// UpdateSinglesGame returns the new ratings for both players of a singles
// game. The two updates are symmetric: each player is scored against the
// other's rating with complementary actual scores.
func UpdateSinglesGame(rating1, rating2 int, player1Won bool) (int, int) {
	score1 := 0.0
	if player1Won {
		score1 = 1.0
	}
	score2 := 1.0 - score1

	new1 := NewRating(rating1, rating2, score1, DefaultKFactor)
	new2 := NewRating(rating2, rating1, score2, DefaultKFactor)
	return new1, new2
}

// UpdateDoublesGame returns the new ratings for all four players of a doubles
// game. Each player is scored against the simple mean of the opposing team's
// ratings and rounded individually, so teammates with different ratings get
// different deltas for the same outcome: the stronger teammate gains (or
// loses) less.
func UpdateDoublesGame(team1 [2]int, team2 [2]int, team1Won bool) ([2]int, [2]int) {
	team1Avg := float64(team1[0]+team1[1]) / 2
	team2Avg := float64(team2[0]+team2[1]) / 2

	score1 := 0.0
	if team1Won {
		score1 = 1.0
	}
	score2 := 1.0 - score1

	k := float64(DefaultKFactor)
	newTeam1 := [2]int{
		int(math.Round(float64(team1[0]) + k*(score1-ExpectedScore(float64(team1[0]), team2Avg)))),
		int(math.Round(float64(team1[1]) + k*(score1-ExpectedScore(float64(team1[1]), team2Avg)))),
	}
	newTeam2 := [2]int{
		int(math.Round(float64(team2[0]) + k*(score2-ExpectedScore(float64(team2[0]), team1Avg)))),
		int(math.Round(float64(team2[1]) + k*(score2-ExpectedScore(float64(team2[1]), team1Avg)))),
	}
	return newTeam1, newTeam2
}

// GameResult is the minimal slice of a game the engine needs: the ordered
// participant list and the two side scores. For singles, score index 0
// belongs to PlayerIDs[0]. For doubles, index 0 belongs to the team
// PlayerIDs[0:2] and index 1 to PlayerIDs[2:4].
type GameResult struct {
	PlayerIDs []string
	Scores    []int
}

// ProcessGameResults computes the post-game ratings for every participant of
// a game. The input map is never mutated; a fresh map is returned.
// Participants missing from currentRatings are seeded at DefaultRating before
// the update. Dispatch is by participant count: 2 players is singles, 4 is
// doubles. The winning side is the one with the strictly higher score.
func ProcessGameResults(game GameResult, currentRatings map[string]int) map[string]int {
	updated := make(map[string]int, len(currentRatings)+len(game.PlayerIDs))
	for id, rating := range currentRatings {
		updated[id] = rating
	}
	for _, id := range game.PlayerIDs {
		if _, ok := updated[id]; !ok {
			updated[id] = DefaultRating
		}
	}

	switch len(game.PlayerIDs) {
	case 2:
		p1, p2 := game.PlayerIDs[0], game.PlayerIDs[1]
		player1Won := game.Scores[0] > game.Scores[1]
		updated[p1], updated[p2] = UpdateSinglesGame(updated[p1], updated[p2], player1Won)
	case 4:
		team1IDs := game.PlayerIDs[:2]
		team2IDs := game.PlayerIDs[2:]
		team1Won := game.Scores[0] > game.Scores[1]

		team1 := [2]int{updated[team1IDs[0]], updated[team1IDs[1]]}
		team2 := [2]int{updated[team2IDs[0]], updated[team2IDs[1]]}
		newTeam1, newTeam2 := UpdateDoublesGame(team1, team2, team1Won)

		updated[team1IDs[0]], updated[team1IDs[1]] = newTeam1[0], newTeam1[1]
		updated[team2IDs[0]], updated[team2IDs[1]] = newTeam2[0], newTeam2[1]
	}

	return updated
}
