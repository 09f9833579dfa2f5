package league

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mauv0809/crispy-paddle/internal/store"
)

// The helpers below translate between domain entities and record-store rows.
// Every cross-reference row of a game or tournament carries the exact same
// payload as the primary row; only the keys and the type tag differ, so the
// denormalized copies can never drift from the primary record.

func playerRecord(p *Player, now time.Time) (*store.Record, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode player %s: %w", p.ID, err)
	}
	score := p.EloScore
	return &store.Record{
		PK:        playerPK(p.ID),
		SK:        skProfile,
		Type:      TypePlayer,
		SiteID:    p.SiteID,
		EloScore:  &score,
		Payload:   payload,
		CreatedAt: now.Unix(),
	}, nil
}

func playerFromRecord(rec *store.Record) (*Player, error) {
	var p Player
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode player record %s: %w", rec.PK, err)
	}
	// The index column is authoritative for the rating: conditional
	// updates write it together with the payload, but a fresher column
	// always wins.
	if rec.EloScore != nil {
		p.EloScore = *rec.EloScore
	}
	return &p, nil
}

func siteRecord(s *Site, now time.Time) (*store.Record, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode site %s: %w", s.ID, err)
	}
	return &store.Record{
		PK:        sitePK(s.ID),
		SK:        skDetails,
		Type:      TypeSite,
		SiteID:    s.ID,
		Payload:   payload,
		CreatedAt: now.Unix(),
	}, nil
}

func siteFromRecord(rec *store.Record) (*Site, error) {
	var s Site
	if err := json.Unmarshal(rec.Payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode site record %s: %w", rec.PK, err)
	}
	return &s, nil
}

// gameRecords builds the primary game row plus its cross-reference rows:
// one per participant and one for the site, all sharing the payload and
// the date-based sort key.
func gameRecords(g *Game, now time.Time) (*store.Record, []*store.Record, error) {
	payload, err := json.Marshal(g)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode game %s: %w", g.ID, err)
	}
	sk := gameSKPrefix + dateSortKey(g.Date, now)
	createdAt := now.Unix()

	primary := &store.Record{
		PK:        gamePK(g.ID),
		SK:        sk,
		Type:      TypeGame,
		SiteID:    g.SiteID,
		Payload:   payload,
		CreatedAt: createdAt,
	}

	related := make([]*store.Record, 0, len(g.PlayerIDs)+1)
	for _, playerID := range g.PlayerIDs {
		related = append(related, &store.Record{
			PK:        playerPK(playerID),
			SK:        sk,
			Type:      TypePlayerGame,
			SiteID:    g.SiteID,
			Payload:   payload,
			CreatedAt: createdAt,
		})
	}
	related = append(related, &store.Record{
		PK:        sitePK(g.SiteID),
		SK:        sk,
		Type:      TypeSiteGame,
		SiteID:    g.SiteID,
		Payload:   payload,
		CreatedAt: createdAt,
	})

	return primary, related, nil
}

func gameFromRecord(rec *store.Record) (*Game, error) {
	var g Game
	if err := json.Unmarshal(rec.Payload, &g); err != nil {
		return nil, fmt.Errorf("failed to decode game record %s: %w", rec.PK, err)
	}
	return &g, nil
}

// tournamentRecords builds the primary tournament row plus its site
// cross-reference row.
func tournamentRecords(t *Tournament, now time.Time) (*store.Record, []*store.Record, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	sk := tournamentSKPrefix + dateSortKey(t.Date, now)
	createdAt := now.Unix()

	primary := &store.Record{
		PK:        tournamentPK(t.ID),
		SK:        sk,
		Type:      TypeTournament,
		SiteID:    t.SiteID,
		Payload:   payload,
		CreatedAt: createdAt,
	}
	related := []*store.Record{{
		PK:        sitePK(t.SiteID),
		SK:        sk,
		Type:      TypeSiteTournament,
		SiteID:    t.SiteID,
		Payload:   payload,
		CreatedAt: createdAt,
	}}

	return primary, related, nil
}

func tournamentFromRecord(rec *store.Record) (*Tournament, error) {
	var t Tournament
	if err := json.Unmarshal(rec.Payload, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament record %s: %w", rec.PK, err)
	}
	return &t, nil
}
