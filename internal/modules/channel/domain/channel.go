package domain

import (
	"strconv"
	"strings"

	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/errors"
)

// Identifier is a watched-channel identifier: either a numeric chat ID
// (internal -100-prefixed form allowed) or a @username.
type Identifier struct {
	Numeric  int64
	Username string // stored with the leading @, empty for numeric IDs
}

// Parse converts user or file input into an Identifier.
// Accepted forms: "-1001234567890", "1234567890", "@channel_username".
func Parse(raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identifier{}, errors.ErrInvalidChannelID
	}

	if strings.HasPrefix(raw, "@") {
		if !validUsername(raw[1:]) {
			return Identifier{}, errors.ErrInvalidChannelID
		}
		return Identifier{Username: raw}, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Identifier{}, errors.ErrInvalidChannelID
	}
	return Identifier{Numeric: id}, nil
}

func validUsername(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// IsNumeric reports whether the identifier is a numeric chat ID.
func (id Identifier) IsNumeric() bool {
	return id.Username == ""
}

// Key is the normalized comparison form: the decimal chat ID, or the
// lowercased username without the leading @. Two identifiers are the same
// channel iff their keys are equal.
func (id Identifier) Key() string {
	if id.IsNumeric() {
		return strconv.FormatInt(id.Numeric, 10)
	}
	return strings.ToLower(strings.TrimPrefix(id.Username, "@"))
}

// String is the stored form: decimal chat ID or @username as entered.
func (id Identifier) String() string {
	if id.IsNumeric() {
		return strconv.FormatInt(id.Numeric, 10)
	}
	return id.Username
}

// Matches reports whether a Telegram chat (numeric ID plus optional bare
// username) refers to this identifier.
func (id Identifier) Matches(chatID int64, username string) bool {
	if id.IsNumeric() {
		return id.Numeric == chatID
	}
	return username != "" && strings.EqualFold(strings.TrimPrefix(id.Username, "@"), username)
}
