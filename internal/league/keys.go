package league

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sort key constants for the singleton rows of an entity.
const (
	skProfile = "PROFILE"
	skDetails = "DETAILS"

	gameSKPrefix       = "GAME#"
	tournamentSKPrefix = "TOURNAMENT#"
)

func playerPK(id string) string     { return "PLAYER#" + id }
func sitePK(id string) string       { return "SITE#" + id }
func gamePK(id string) string       { return "GAME#" + id }
func tournamentPK(id string) string { return "TOURNAMENT#" + id }

// newID returns a fresh unique id carrying an entity prefix ("p-", "g-",
// "site-", "t-").
func newID(prefix string) string {
	return prefix + uuid.New().String()
}

// dateSortKey converts an RFC3339 timestamp to the sortable key segment
// "YYYY-MM-DD#HHMMSS" used for game and tournament rows, so a partition
// scan returns them in date order. Unparseable input falls back to the
// moment of the call.
func dateSortKey(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		t = now
	}
	return fmt.Sprintf("%s#%s", t.Format("2006-01-02"), t.Format("150405"))
}
