package league

import "context"

// Service defines the league's workflows over the record store.
type Service interface {
	// CreatePlayer registers a player at a site with the default rating.
	CreatePlayer(ctx context.Context, username, email, siteID string, profile map[string]any) (*Player, error)
	// GetPlayer returns a player's profile with their recent games.
	GetPlayer(ctx context.Context, playerID string, gamesLimit int) (*PlayerDetail, error)
	// TopPlayers lists players ordered by rating, highest first. A
	// non-nil minRating keeps only players rated strictly above it.
	TopPlayers(ctx context.Context, limit int, minRating *int) ([]*Player, error)
	// SitePlayers lists the players registered at a site.
	SitePlayers(ctx context.Context, siteID string, limit int) ([]*Player, error)

	// CreateSite registers a new site.
	CreateSite(ctx context.Context, name, location string) (*Site, error)
	// ListSites lists all sites.
	ListSites(ctx context.Context) ([]*Site, error)

	// RecordGame validates a reported result, computes the new ratings,
	// persists the game with its cross-reference records and writes the
	// participants' updated ratings back.
	RecordGame(ctx context.Context, report GameReport) (*GameSummary, error)
	// RecentGames lists the latest recorded games.
	RecentGames(ctx context.Context, limit int) ([]*Game, error)
	// SiteGames lists the latest games played at a site.
	SiteGames(ctx context.Context, siteID string, limit int) ([]*Game, error)
	// PlayerGames lists the latest games a player took part in.
	PlayerGames(ctx context.Context, playerID string, limit int) ([]*Game, error)

	// CreateTournament registers a tournament at a site.
	CreateTournament(ctx context.Context, name, siteID string, playerIDs []string, date string) (*Tournament, error)
	// RecentTournaments lists the latest tournaments.
	RecentTournaments(ctx context.Context, limit int) ([]*Tournament, error)
	// SiteTournaments lists the tournaments held at a site.
	SiteTournaments(ctx context.Context, siteID string, limit int) ([]*Tournament, error)
}
