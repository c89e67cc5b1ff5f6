package telegram

import (
	stderrors "errors"
	"testing"
)

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "rate limit", err: stderrors.New("Too Many Requests: retry after 5"), want: false},
		{name: "network", err: stderrors.New("dial tcp: connection refused"), want: false},
		{name: "already deleted", err: stderrors.New("Bad Request: message to delete not found"), want: true},
		{name: "no rights", err: stderrors.New("Bad Request: not enough rights"), want: true},
		{name: "kicked", err: stderrors.New("Forbidden: bot was kicked from the channel chat"), want: true},
		{name: "too long", err: stderrors.New("Bad Request: message is too long"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanent(tt.err); got != tt.want {
				t.Errorf("isPermanent(%q) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
