package league

import (
	"context"
	"sync"
)

// MockService is a mock implementation of the Service interface for testing.
// It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// Spies for method calls
	CreatePlayerFunc      func(ctx context.Context, username, email, siteID string, profile map[string]any) (*Player, error)
	GetPlayerFunc         func(ctx context.Context, playerID string, gamesLimit int) (*PlayerDetail, error)
	TopPlayersFunc        func(ctx context.Context, limit int, minRating *int) ([]*Player, error)
	SitePlayersFunc       func(ctx context.Context, siteID string, limit int) ([]*Player, error)
	CreateSiteFunc        func(ctx context.Context, name, location string) (*Site, error)
	ListSitesFunc         func(ctx context.Context) ([]*Site, error)
	RecordGameFunc        func(ctx context.Context, report GameReport) (*GameSummary, error)
	RecentGamesFunc       func(ctx context.Context, limit int) ([]*Game, error)
	SiteGamesFunc         func(ctx context.Context, siteID string, limit int) ([]*Game, error)
	PlayerGamesFunc       func(ctx context.Context, playerID string, limit int) ([]*Game, error)
	CreateTournamentFunc  func(ctx context.Context, name, siteID string, playerIDs []string, date string) (*Tournament, error)
	RecentTournamentsFunc func(ctx context.Context, limit int) ([]*Tournament, error)
	SiteTournamentsFunc   func(ctx context.Context, siteID string, limit int) ([]*Tournament, error)

	// Call records
	RecordGameCalls   []GameReport
	CreatePlayerCalls []struct {
		Username string
		Email    string
		SiteID   string
	}
	CreateSiteCalls []struct {
		Name     string
		Location string
	}
	CreateTournamentCalls []struct {
		Name      string
		SiteID    string
		PlayerIDs []string
		Date      string
	}
}

var _ Service = (*MockService)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) CreatePlayer(ctx context.Context, username, email, siteID string, profile map[string]any) (*Player, error) {
	m.mu.Lock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, struct {
		Username string
		Email    string
		SiteID   string
	}{username, email, siteID})
	m.mu.Unlock()
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(ctx, username, email, siteID, profile)
	}
	return &Player{ID: "p-mock", Username: username, Email: email, SiteID: siteID}, nil
}

func (m *MockService) GetPlayer(ctx context.Context, playerID string, gamesLimit int) (*PlayerDetail, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, playerID, gamesLimit)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockService) TopPlayers(ctx context.Context, limit int, minRating *int) ([]*Player, error) {
	if m.TopPlayersFunc != nil {
		return m.TopPlayersFunc(ctx, limit, minRating)
	}
	return nil, nil
}

func (m *MockService) SitePlayers(ctx context.Context, siteID string, limit int) ([]*Player, error) {
	if m.SitePlayersFunc != nil {
		return m.SitePlayersFunc(ctx, siteID, limit)
	}
	return nil, nil
}

func (m *MockService) CreateSite(ctx context.Context, name, location string) (*Site, error) {
	m.mu.Lock()
	m.CreateSiteCalls = append(m.CreateSiteCalls, struct {
		Name     string
		Location string
	}{name, location})
	m.mu.Unlock()
	if m.CreateSiteFunc != nil {
		return m.CreateSiteFunc(ctx, name, location)
	}
	return &Site{ID: "site-mock", Name: name, Location: location}, nil
}

func (m *MockService) ListSites(ctx context.Context) ([]*Site, error) {
	if m.ListSitesFunc != nil {
		return m.ListSitesFunc(ctx)
	}
	return nil, nil
}

func (m *MockService) RecordGame(ctx context.Context, report GameReport) (*GameSummary, error) {
	m.mu.Lock()
	m.RecordGameCalls = append(m.RecordGameCalls, report)
	m.mu.Unlock()
	if m.RecordGameFunc != nil {
		return m.RecordGameFunc(ctx, report)
	}
	return &GameSummary{Game: Game{ID: "g-mock", SiteID: report.SiteID, PlayerIDs: report.PlayerIDs, Scores: report.Scores}}, nil
}

func (m *MockService) RecentGames(ctx context.Context, limit int) ([]*Game, error) {
	if m.RecentGamesFunc != nil {
		return m.RecentGamesFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockService) SiteGames(ctx context.Context, siteID string, limit int) ([]*Game, error) {
	if m.SiteGamesFunc != nil {
		return m.SiteGamesFunc(ctx, siteID, limit)
	}
	return nil, nil
}

func (m *MockService) PlayerGames(ctx context.Context, playerID string, limit int) ([]*Game, error) {
	if m.PlayerGamesFunc != nil {
		return m.PlayerGamesFunc(ctx, playerID, limit)
	}
	return nil, nil
}

func (m *MockService) CreateTournament(ctx context.Context, name, siteID string, playerIDs []string, date string) (*Tournament, error) {
	m.mu.Lock()
	m.CreateTournamentCalls = append(m.CreateTournamentCalls, struct {
		Name      string
		SiteID    string
		PlayerIDs []string
		Date      string
	}{name, siteID, playerIDs, date})
	m.mu.Unlock()
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(ctx, name, siteID, playerIDs, date)
	}
	return &Tournament{ID: "t-mock", Name: name, SiteID: siteID, PlayerIDs: playerIDs, Date: date}, nil
}

func (m *MockService) RecentTournaments(ctx context.Context, limit int) ([]*Tournament, error) {
	if m.RecentTournamentsFunc != nil {
		return m.RecentTournamentsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockService) SiteTournaments(ctx context.Context, siteID string, limit int) ([]*Tournament, error) {
	if m.SiteTournamentsFunc != nil {
		return m.SiteTournamentsFunc(ctx, siteID, limit)
	}
	return nil, nil
}
