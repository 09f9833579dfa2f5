package league

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crispy-paddle/internal/elo"
	"github.com/mauv0809/crispy-paddle/internal/store"
)

// maxRatingRetries bounds the re-read/recompute cycle when a conditional
// rating write loses a race with a concurrent recording.
const maxRatingRetries = 3

// RecordGame turns a validated game report into durable state. The primary
// game record and its cross-reference copies land in a single transaction;
// the participants' rating updates follow as separate writes, each marked
// with the game id so a retried recording skips ratings the game already
// moved. A failure in the rating step still leaves the recorded game in
// place; the error surfaces and nothing is rolled back.
func (s *service) RecordGame(ctx context.Context, report GameReport) (*GameSummary, error) {
	start := time.Now()
	summary, err := s.recordGame(ctx, report)
	s.metrics.ObserveRecordDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.IncGamesFailed()
		return nil, err
	}
	s.metrics.IncGamesRecorded()
	return summary, nil
}

func (s *service) recordGame(ctx context.Context, report GameReport) (*GameSummary, error) {
	if err := ValidateParticipants(report.PlayerIDs); err != nil {
		return nil, err
	}
	if err := ValidateScores(report.Scores); err != nil {
		return nil, err
	}
	if err := s.requireSite(ctx, report.SiteID); err != nil {
		return nil, err
	}

	// Every participant must already exist as a player record. The engine
	// below would happily seed a missing rating at the default, but an
	// unknown player id in a report is a caller mistake, not a new player.
	currentRatings := make(map[string]int, len(report.PlayerIDs))
	for _, playerID := range report.PlayerIDs {
		rating, err := s.playerRating(ctx, playerID)
		if err != nil {
			return nil, err
		}
		currentRatings[playerID] = rating
	}

	now := time.Now()
	date := report.Date
	if date == "" {
		date = now.Format(time.RFC3339)
	}
	game := &Game{
		ID:        newID("g-"),
		SiteID:    report.SiteID,
		PlayerIDs: report.PlayerIDs,
		Scores:    report.Scores,
		Date:      date,
		CreatedAt: now.Format(time.RFC3339),
	}

	result := elo.GameResult{PlayerIDs: game.PlayerIDs, Scores: game.Scores}
	updatedRatings := elo.ProcessGameResults(result, currentRatings)

	primary, related, err := gameRecords(game, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.BatchPut(ctx, append([]*store.Record{primary}, related...)); err != nil {
		return nil, err
	}

	applied := make(map[string]int, len(game.PlayerIDs))
	for _, playerID := range game.PlayerIDs {
		newRating, err := s.writeRating(ctx, game.ID, result, currentRatings, updatedRatings, playerID)
		if err != nil {
			return nil, err
		}
		applied[playerID] = newRating
	}

	log.Info("Game recorded", "gameID", game.ID, "siteID", game.SiteID, "players", len(game.PlayerIDs))
	return &GameSummary{Game: *game, UpdatedRatings: applied}, nil
}

// writeRating persists one participant's post-game rating with a
// compare-and-swap against the rating the workflow read before computing.
// On a conflict the player is re-read: if their record already carries this
// game's id the rating was applied by an earlier attempt and the write is
// skipped, otherwise their update is recomputed against the same game from
// the fresh base, a bounded number of times.
func (s *service) writeRating(ctx context.Context, gameID string, result elo.GameResult, baseRatings, updatedRatings map[string]int, playerID string) (int, error) {
	expected := baseRatings[playerID]
	newRating := updatedRatings[playerID]

	for attempt := 0; attempt < maxRatingRetries; attempt++ {
		_, err := s.store.Update(ctx, playerPK(playerID), skProfile,
			map[string]any{
				"elo_score":    newRating,
				"last_game_id": gameID,
				"updated_at":   time.Now().Format(time.RFC3339),
			},
			&store.Condition{EloScoreEquals: expected},
		)
		if err == nil {
			return newRating, nil
		}
		if !errors.Is(err, store.ErrConditionFailed) {
			return 0, err
		}

		s.metrics.IncRatingConflicts()
		log.Warn("Rating write conflict, retrying", "playerID", playerID, "attempt", attempt+1)

		rec, err := s.store.Get(ctx, playerPK(playerID), skProfile)
		if errors.Is(err, store.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
		}
		if err != nil {
			return 0, err
		}
		fresh, err := playerFromRecord(rec)
		if err != nil {
			return 0, err
		}
		if fresh.LastGameID == gameID {
			// An earlier attempt already applied this game.
			return fresh.EloScore, nil
		}
		// Recompute only this player's delta: their own base moves to the
		// freshly read value while the opponents keep the ratings the game
		// was fought at.
		rebased := make(map[string]int, len(baseRatings))
		for id, rating := range baseRatings {
			rebased[id] = rating
		}
		rebased[playerID] = fresh.EloScore
		expected = fresh.EloScore
		newRating = elo.ProcessGameResults(result, rebased)[playerID]
	}

	return 0, fmt.Errorf("%w: player %s", ErrRatingConflict, playerID)
}
