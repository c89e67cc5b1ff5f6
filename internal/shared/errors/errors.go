package errors

import "errors"

var (
	ErrMissingBotToken  = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrUnauthorized     = errors.New("unauthorized user")
	ErrInvalidChannelID = errors.New("invalid channel identifier")
	ErrEmptyText        = errors.New("text must not be empty")
	ErrNotCommand       = errors.New("not a command")
	ErrUnknownCommand   = errors.New("unknown command")
)
