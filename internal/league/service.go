package league

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mauv0809/crispy-paddle/internal/elo"
	"github.com/mauv0809/crispy-paddle/internal/metrics"
	"github.com/mauv0809/crispy-paddle/internal/store"
)

type service struct {
	store   store.RecordStore
	metrics metrics.Metrics
}

// New creates a new league Service on top of the record store.
func New(recordStore store.RecordStore, m metrics.Metrics) Service {
	return &service{
		store:   recordStore,
		metrics: m,
	}
}

func (s *service) CreatePlayer(ctx context.Context, username, email, siteID string, profile map[string]any) (*Player, error) {
	if !ValidUsername(username) {
		return nil, fmt.Errorf("%w: invalid username format", ErrValidation)
	}
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	now := time.Now()
	if profile == nil {
		profile = map[string]any{"name": username}
	}
	player := &Player{
		ID:        newID("p-"),
		Username:  username,
		Email:     email,
		SiteID:    siteID,
		EloScore:  elo.DefaultRating,
		Profile:   profile,
		CreatedAt: now.Format(time.RFC3339),
		UpdatedAt: now.Format(time.RFC3339),
	}

	rec, err := playerRecord(player, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *service) GetPlayer(ctx context.Context, playerID string, gamesLimit int) (*PlayerDetail, error) {
	rec, err := s.store.Get(ctx, playerPK(playerID), skProfile)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return nil, err
	}
	player, err := playerFromRecord(rec)
	if err != nil {
		return nil, err
	}

	games, err := s.PlayerGames(ctx, playerID, gamesLimit)
	if err != nil {
		return nil, err
	}
	return &PlayerDetail{Player: *player, RecentGames: games}, nil
}

func (s *service) TopPlayers(ctx context.Context, limit int, minRating *int) ([]*Player, error) {
	recs, err := s.store.QueryByType(ctx, TypePlayer, limit, minRating)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, playerFromRecord)
}

func (s *service) SitePlayers(ctx context.Context, siteID string, limit int) ([]*Player, error) {
	recs, err := s.store.QueryBySite(ctx, siteID, TypePlayer, limit)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, playerFromRecord)
}

func (s *service) CreateSite(ctx context.Context, name, location string) (*Site, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	now := time.Now()
	site := &Site{
		ID:        newID("site-"),
		Name:      name,
		Location:  location,
		CreatedAt: now.Format(time.RFC3339),
	}

	rec, err := siteRecord(site, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *service) ListSites(ctx context.Context) ([]*Site, error) {
	recs, err := s.store.QueryByType(ctx, TypeSite, 100, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, siteFromRecord)
}

func (s *service) RecentGames(ctx context.Context, limit int) ([]*Game, error) {
	recs, err := s.store.QueryByType(ctx, TypeGame, limit, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, gameFromRecord)
}

func (s *service) SiteGames(ctx context.Context, siteID string, limit int) ([]*Game, error) {
	recs, err := s.store.QueryBySite(ctx, siteID, TypeSiteGame, limit)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, gameFromRecord)
}

func (s *service) PlayerGames(ctx context.Context, playerID string, limit int) ([]*Game, error) {
	recs, err := s.store.QueryPrefix(ctx, playerPK(playerID), gameSKPrefix, limit)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, gameFromRecord)
}

func (s *service) CreateTournament(ctx context.Context, name, siteID string, playerIDs []string, date string) (*Tournament, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}
	for _, playerID := range playerIDs {
		if _, err := s.playerRating(ctx, playerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if date == "" {
		date = now.Format(time.RFC3339)
	}
	tournament := &Tournament{
		ID:        newID("t-"),
		Name:      name,
		SiteID:    siteID,
		Date:      date,
		PlayerIDs: playerIDs,
		CreatedAt: now.Format(time.RFC3339),
	}

	primary, related, err := tournamentRecords(tournament, now)
	if err != nil {
		return nil, err
	}
	// Primary row and its cross-references land in one transaction.
	if err := s.store.BatchPut(ctx, append([]*store.Record{primary}, related...)); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *service) RecentTournaments(ctx context.Context, limit int) ([]*Tournament, error) {
	recs, err := s.store.QueryByType(ctx, TypeTournament, limit, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, tournamentFromRecord)
}

func (s *service) SiteTournaments(ctx context.Context, siteID string, limit int) ([]*Tournament, error) {
	recs, err := s.store.QueryBySite(ctx, siteID, TypeSiteTournament, limit)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, tournamentFromRecord)
}

// requireSite fails with ErrSiteNotFound unless the site record exists.
func (s *service) requireSite(ctx context.Context, siteID string) error {
	_, err := s.store.Get(ctx, sitePK(siteID), skDetails)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}
	return err
}

// playerRating returns a player's current rating, failing with
// ErrPlayerNotFound when the player record does not exist.
func (s *service) playerRating(ctx context.Context, playerID string) (int, error) {
	rec, err := s.store.Get(ctx, playerPK(playerID), skProfile)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return 0, err
	}
	if rec.EloScore != nil {
		return *rec.EloScore, nil
	}
	player, err := playerFromRecord(rec)
	if err != nil {
		return 0, err
	}
	return player.EloScore, nil
}

func mapRecords[T any](recs []*store.Record, convert func(*store.Record) (*T, error)) ([]*T, error) {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		entity, err := convert(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
