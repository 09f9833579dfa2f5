package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crispy-paddle/internal/league"
)

// limitParam reads the 'limit' query parameter, falling back to def and
// clamping to [1, max].
func limitParam(r *http.Request, def, max int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("Invalid 'limit' parameter, using default", "limit_param", raw, "default", def)
		return def
	}
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := limitParam(r, 10, 100)
		siteID := r.URL.Query().Get("site_id")

		var minRating *int
		if raw := r.URL.Query().Get("min_rating"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid min_rating parameter")
				return
			}
			minRating = &parsed
		}

		var (
			players []*league.Player
			err     error
		)
		if siteID != "" {
			players, err = s.League.SitePlayers(r.Context(), siteID, limit)
		} else {
			players, err = s.League.TopPlayers(r.Context(), limit, minRating)
		}
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	type request struct {
		Username string         `json:"username"`
		Email    string         `json:"email"`
		SiteID   string         `json:"site_id"`
		Profile  map[string]any `json:"profile"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		player, err := s.League.CreatePlayer(r.Context(), req.Username, req.Email, req.SiteID, req.Profile)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		log.Info("Player created", "playerID", player.ID, "siteID", player.SiteID)
		respondJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")
		gamesLimit := limitParam(r, 20, 100)

		detail, err := s.League.GetPlayer(r.Context(), playerID, gamesLimit)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, detail)
	}
}

func (s *Server) ListSitesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sites, err := s.League.ListSites(r.Context())
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, sites)
	}
}

func (s *Server) CreateSiteHandler() http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		site, err := s.League.CreateSite(r.Context(), req.Name, req.Location)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		log.Info("Site created", "siteID", site.ID, "name", site.Name)
		respondJSON(w, http.StatusCreated, site)
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := limitParam(r, 20, 100)
		playerID := r.URL.Query().Get("player_id")
		siteID := r.URL.Query().Get("site_id")

		var (
			games []*league.Game
			err   error
		)
		switch {
		case playerID != "":
			games, err = s.League.PlayerGames(r.Context(), playerID, limit)
		case siteID != "":
			games, err = s.League.SiteGames(r.Context(), siteID, limit)
		default:
			games, err = s.League.RecentGames(r.Context(), limit)
		}
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, games)
	}
}

func (s *Server) RecordGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report league.GameReport
		if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		summary, err := s.League.RecordGame(r.Context(), report)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		log.Info("Game recorded", "gameID", summary.ID, "siteID", summary.SiteID)
		respondJSON(w, http.StatusCreated, summary)
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := limitParam(r, 5, 20)
		siteID := r.URL.Query().Get("site_id")

		var (
			tournaments []*league.Tournament
			err         error
		)
		if siteID != "" {
			tournaments, err = s.League.SiteTournaments(r.Context(), siteID, limit)
		} else {
			tournaments, err = s.League.RecentTournaments(r.Context(), limit)
		}
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, tournaments)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	type request struct {
		Name      string   `json:"name"`
		SiteID    string   `json:"site_id"`
		PlayerIDs []string `json:"player_ids"`
		Date      string   `json:"date"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		tournament, err := s.League.CreateTournament(r.Context(), req.Name, req.SiteID, req.PlayerIDs, req.Date)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		log.Info("Tournament created", "tournamentID", tournament.ID, "siteID", tournament.SiteID)
		respondJSON(w, http.StatusCreated, tournament)
	}
}

// GameReportsPushHandler receives Pub/Sub push deliveries carrying a
// msgpack-encoded batch of game reports and records each game in order.
// Individual failures are logged but do not fail the batch, otherwise a
// single bad report would wedge the subscription under redelivery.
func (s *Server) GameReportsPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to read request body")
			return
		}
		log.Debug("Received game reports push", "body", string(bodyBytes))

		var pushMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pushMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			respondError(w, http.StatusBadRequest, "invalid base64 data")
			return
		}

		var reports []league.GameReport
		if err := s.Pubsub.ProcessMessage(rawData, &reports); err != nil {
			respondError(w, http.StatusBadRequest, "invalid message payload")
			return
		}

		s.Metrics.IncReportBatches()
		recorded := 0
		for i, report := range reports {
			if _, err := s.League.RecordGame(r.Context(), report); err != nil {
				log.Error("Failed to record reported game", "index", i, "siteID", report.SiteID, "error", err)
				continue
			}
			recorded++
		}
		log.Info("Game report batch processed", "total", len(reports), "recorded", recorded)
		w.Write([]byte("OK"))
	}
}
