// Package league holds the domain model and the workflows that turn
// validated requests into durable records: player and site registration,
// game recording with rating updates, and tournament creation.
package league

// Entity type tags, stored on every record and used for secondary lookups.
const (
	TypePlayer         = "PLAYER"
	TypeSite           = "SITE"
	TypeGame           = "GAME"
	TypeTournament     = "TOURNAMENT"
	TypePlayerGame     = "PLAYER_GAME"
	TypeSiteGame       = "SITE_GAME"
	TypeSiteTournament = "SITE_TOURNAMENT"
)

// Player is a registered league member. The rating starts at the default
// and is only ever changed by recording a game.
type Player struct {
	ID        string         `json:"player_id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	SiteID    string         `json:"site_id"`
	EloScore  int            `json:"elo_score"`
	Profile   map[string]any `json:"profile"`
	// LastGameID marks the most recent game whose rating change was
	// applied, so a retried recording never applies the same game twice.
	LastGameID string `json:"last_game_id,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Site is a physical location with tables. Immutable once created.
type Site struct {
	ID        string `json:"site_id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	CreatedAt string `json:"created_at"`
}

// Game is a reported result. Two participants is singles, four is doubles
// with PlayerIDs[0:2] versus PlayerIDs[2:4]. Scores holds the two side
// scores in participant order. Immutable once created.
type Game struct {
	ID        string   `json:"game_id"`
	SiteID    string   `json:"site_id"`
	PlayerIDs []string `json:"player_ids"`
	Scores    []int    `json:"scores"`
	Date      string   `json:"date"`
	CreatedAt string   `json:"created_at"`
}

// Tournament is an organized event at a site. Immutable once created.
type Tournament struct {
	ID        string   `json:"tournament_id"`
	Name      string   `json:"name"`
	SiteID    string   `json:"site_id"`
	Date      string   `json:"date"`
	PlayerIDs []string `json:"player_ids"`
	CreatedAt string   `json:"created_at"`
}

// GameSummary is what RecordGame returns: the created game plus the
// post-game rating of every participant.
type GameSummary struct {
	Game
	UpdatedRatings map[string]int `json:"updated_ratings"`
}

// PlayerDetail is a player profile together with their recent games.
type PlayerDetail struct {
	Player
	RecentGames []*Game `json:"recent_games"`
}

// GameReport is an inbound game result, as carried by the HTTP body and
// the Pub/Sub batch ingestion payload.
type GameReport struct {
	PlayerIDs []string `json:"player_ids" msgpack:"player_ids"`
	Scores    []int    `json:"scores" msgpack:"scores"`
	SiteID    string   `json:"site_id" msgpack:"site_id"`
	Date      string   `json:"date,omitempty" msgpack:"date,omitempty"`
}
