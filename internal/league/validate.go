package league

import (
	"fmt"
	"regexp"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidUsername reports whether a username is 3-30 chars of alphanumerics,
// underscore or dash.
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// ValidEmail reports whether an email address looks plausible.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateParticipants rejects any participant list that is not exactly a
// singles (2) or doubles (4) lineup.
func ValidateParticipants(playerIDs []string) error {
	if len(playerIDs) != 2 && len(playerIDs) != 4 {
		return fmt.Errorf("%w: invalid number of players (must be 2 or 4)", ErrValidation)
	}
	return nil
}

// ValidateScores rejects score pairs with the wrong shape, negative
// entries, or a tie. League games cannot end in a draw.
func ValidateScores(scores []int) error {
	if len(scores) != 2 {
		return fmt.Errorf("%w: scores must have exactly two entries", ErrValidation)
	}
	if scores[0] < 0 || scores[1] < 0 {
		return fmt.Errorf("%w: scores must be non-negative", ErrValidation)
	}
	if scores[0] == scores[1] {
		return fmt.Errorf("%w: scores cannot be equal (no draws)", ErrValidation)
	}
	return nil
}
