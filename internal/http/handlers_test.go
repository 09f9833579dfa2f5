package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mauv0809/crispy-paddle/internal/auth"
	"github.com/mauv0809/crispy-paddle/internal/config"
	"github.com/mauv0809/crispy-paddle/internal/league"
	"github.com/mauv0809/crispy-paddle/internal/metrics"
	"github.com/mauv0809/crispy-paddle/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testAdminEmail = "admin@example.com"

// setupTestServer initializes a server over mock collaborators.
func setupTestServer(t *testing.T) (*Server, *league.MockService, *metrics.MockMetrics) {
	t.Helper()

	leagueSvc := league.NewMock()
	metricsSvc := metrics.NewMock()
	server := NewServer(
		leagueSvc,
		metricsSvc,
		http.NotFoundHandler(),
		config.Config{AdminEmails: testAdminEmail},
		auth.NewAuthorizer(testAdminEmail),
		pubsub.NewMock(),
	)
	return server, leagueSvc, metricsSvc
}

func bearerToken(t *testing.T, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-" + email,
		"email": email,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestListPlayersHandler(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	var gotLimit int
	var gotMinRating *int
	leagueSvc.TopPlayersFunc = func(ctx context.Context, limit int, minRating *int) ([]*league.Player, error) {
		gotLimit, gotMinRating = limit, minRating
		return []*league.Player{{ID: "p1", Username: "alice", EloScore: 1250}}, nil
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/players", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 10, gotLimit, "default limit")
	assert.Nil(t, gotMinRating)

	var players []*league.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "alice", players[0].Username)

	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/players?min_rating=1300", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotMinRating)
	assert.Equal(t, 1300, *gotMinRating)

	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/players?min_rating=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListPlayersHandlerSiteFilterAndClamp(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	var gotSite string
	var gotLimit int
	leagueSvc.SitePlayersFunc = func(ctx context.Context, siteID string, limit int) ([]*league.Player, error) {
		gotSite, gotLimit = siteID, limit
		return nil, nil
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/players?site_id=s1&limit=500", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "s1", gotSite)
	assert.Equal(t, 100, gotLimit, "limit clamped to the endpoint maximum")
}

func TestCreatePlayerHandler(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.CreatePlayerFunc = func(ctx context.Context, username, email, siteID string, profile map[string]any) (*league.Player, error) {
		return &league.Player{ID: "p1", Username: username, Email: email, SiteID: siteID, EloScore: 1200}, nil
	}

	body := `{"username":"alice","email":"alice@example.com","site_id":"s1"}`
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/api/players", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, leagueSvc.CreatePlayerCalls, 1)
	assert.Equal(t, "alice", leagueSvc.CreatePlayerCalls[0].Username)
	assert.Equal(t, "s1", leagueSvc.CreatePlayerCalls[0].SiteID)
}

func TestCreatePlayerHandlerValidationError(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.CreatePlayerFunc = func(ctx context.Context, username, email, siteID string, profile map[string]any) (*league.Player, error) {
		return nil, fmt.Errorf("%w: invalid username", league.ErrValidation)
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/api/players", strings.NewReader(`{"username":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid username")
}

func TestGetPlayerHandler(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.GetPlayerFunc = func(ctx context.Context, playerID string, gamesLimit int) (*league.PlayerDetail, error) {
		if playerID != "p1" {
			return nil, league.ErrPlayerNotFound
		}
		return &league.PlayerDetail{Player: league.Player{ID: "p1", Username: "alice"}}, nil
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/players/p1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/players/ghost", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "player not found")
}

func TestCreateSiteHandlerRequiresAdmin(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.CreateSiteFunc = func(ctx context.Context, name, location string) (*league.Site, error) {
		return &league.Site{ID: "s1", Name: name, Location: location}, nil
	}

	body := func() *strings.Reader { return strings.NewReader(`{"name":"Downtown","location":"Main St"}`) }

	// No token at all.
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/api/sites", body()))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Authenticated but not on the allow-list.
	req := httptest.NewRequest("POST", "/api/sites", body())
	req.Header.Set("Authorization", bearerToken(t, "member@example.com"))
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, leagueSvc.CreateSiteCalls)

	// Admin.
	req = httptest.NewRequest("POST", "/api/sites", body())
	req.Header.Set("Authorization", bearerToken(t, testAdminEmail))
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, leagueSvc.CreateSiteCalls, 1)
	assert.Equal(t, "Downtown", leagueSvc.CreateSiteCalls[0].Name)
}

func TestListGamesHandlerDispatch(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	var called string
	leagueSvc.RecentGamesFunc = func(ctx context.Context, limit int) ([]*league.Game, error) {
		called = "recent"
		return nil, nil
	}
	leagueSvc.SiteGamesFunc = func(ctx context.Context, siteID string, limit int) ([]*league.Game, error) {
		called = "site:" + siteID
		return nil, nil
	}
	leagueSvc.PlayerGamesFunc = func(ctx context.Context, playerID string, limit int) ([]*league.Game, error) {
		called = "player:" + playerID
		return nil, nil
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/games", nil))
	assert.Equal(t, "recent", called)

	server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/games?site_id=s1", nil))
	assert.Equal(t, "site:s1", called)

	// player_id wins when both filters are present.
	server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/games?site_id=s1&player_id=p1", nil))
	assert.Equal(t, "player:p1", called)
}

func TestRecordGameHandler(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.RecordGameFunc = func(ctx context.Context, report league.GameReport) (*league.GameSummary, error) {
		return &league.GameSummary{
			Game:           league.Game{ID: "g1", SiteID: report.SiteID, PlayerIDs: report.PlayerIDs, Scores: report.Scores},
			UpdatedRatings: map[string]int{"p1": 1216, "p2": 1184},
		}, nil
	}

	body := `{"player_ids":["p1","p2"],"scores":[21,15],"site_id":"s1"}`
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/api/games", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)
	var summary league.GameSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, "g1", summary.ID)
	assert.Equal(t, 1216, summary.UpdatedRatings["p1"])

	require.Len(t, leagueSvc.RecordGameCalls, 1)
	assert.Equal(t, []string{"p1", "p2"}, leagueSvc.RecordGameCalls[0].PlayerIDs)
}

func TestRecordGameHandlerUnknownSite(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.RecordGameFunc = func(ctx context.Context, report league.GameReport) (*league.GameSummary, error) {
		return nil, league.ErrSiteNotFound
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/api/games", strings.NewReader(`{"site_id":"ghost"}`)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRecordGameHandlerInternalErrorLeaksNothing(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.RecordGameFunc = func(ctx context.Context, report league.GameReport) (*league.GameSummary, error) {
		return nil, fmt.Errorf("sqlite: database is locked")
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/api/games", strings.NewReader(`{"site_id":"s1"}`)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "sqlite")
	assert.Contains(t, rr.Body.String(), "internal server error")
}

func TestCreateTournamentHandlerRequiresAdmin(t *testing.T) {
	server, leagueSvc, _ := setupTestServer(t)

	leagueSvc.CreateTournamentFunc = func(ctx context.Context, name, siteID string, playerIDs []string, date string) (*league.Tournament, error) {
		return &league.Tournament{ID: "t1", Name: name, SiteID: siteID, PlayerIDs: playerIDs, Date: date}, nil
	}

	body := `{"name":"Summer Open","site_id":"s1","player_ids":["p1","p2"],"date":"2026-07-01"}`
	req := httptest.NewRequest("POST", "/api/tournaments", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, testAdminEmail))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, leagueSvc.CreateTournamentCalls, 1)
	assert.Equal(t, "Summer Open", leagueSvc.CreateTournamentCalls[0].Name)

	// Tournament listing stays public.
	leagueSvc.RecentTournamentsFunc = func(ctx context.Context, limit int) ([]*league.Tournament, error) {
		assert.Equal(t, 5, limit, "default limit")
		return nil, nil
	}
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/api/tournaments", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGameReportsPushHandler(t *testing.T) {
	server, leagueSvc, metricsSvc := setupTestServer(t)

	var recorded []league.GameReport
	leagueSvc.RecordGameFunc = func(ctx context.Context, report league.GameReport) (*league.GameSummary, error) {
		if report.SiteID == "bad" {
			return nil, league.ErrSiteNotFound
		}
		recorded = append(recorded, report)
		return &league.GameSummary{}, nil
	}

	reports := []league.GameReport{
		{PlayerIDs: []string{"p1", "p2"}, Scores: []int{21, 15}, SiteID: "s1"},
		{PlayerIDs: []string{"p3", "p4"}, Scores: []int{9, 21}, SiteID: "bad"},
		{PlayerIDs: []string{"p1", "p3"}, Scores: []int{21, 19}, SiteID: "s1"},
	}
	payload, err := msgpack.Marshal(reports)
	require.NoError(t, err)

	push := map[string]any{
		"subscription": "projects/test/subscriptions/game-reports",
		"message":      map[string]any{"data": base64.StdEncoding.EncodeToString(payload)},
	}
	body, err := json.Marshal(push)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/pubsub/games", bytes.NewReader(body)))

	// The batch succeeds even though one report referenced a missing site.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, recorded, 2)
	assert.Equal(t, 1, metricsSvc.ReportBatchesCount)
	assert.Len(t, leagueSvc.RecordGameCalls, 3)
}

func TestGameReportsPushHandlerBadPayload(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/pubsub/games", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	push := `{"message":{"data":"%%%not-base64%%%"}}`
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/pubsub/games", strings.NewReader(push)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
