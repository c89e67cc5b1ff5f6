package telegram

import (
	"strings"

	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/errors"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names

// CommandKind is the closed set of admin commands.
// ENUM(add_channel,remove_channel,list_channels,set_text,set_link_text,status,help,start)
type CommandKind string

// Command is one parsed admin command: a kind plus its raw argument text
// (remaining words joined by single spaces, empty when none).
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand turns a "/keyword arg..." message into a Command. The keyword
// is case-sensitive; an optional @botname suffix on the keyword is ignored.
func ParseCommand(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, errors.ErrNotCommand
	}

	keyword := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(keyword, '@'); at >= 0 {
		keyword = keyword[:at]
	}

	kind, ok := _CommandKindValue[keyword]
	if !ok {
		return Command{}, errors.ErrUnknownCommand
	}

	return Command{Kind: kind, Arg: strings.Join(fields[1:], " ")}, nil
}
