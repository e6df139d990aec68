package producer

import (
	"context"

	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/pkg/contracts/events"
)

// SessionListener converte transições da sessão em eventos SessionChanged.
// Registre com session.Store.Subscribe.
func SessionListener(p Publisher) func(session.Change) {
	return func(c session.Change) {
		_ = p.PublishSessionChanged(context.Background(), events.SessionChanged{
			From:   string(c.From),
			To:     string(c.To),
			Reason: c.Reason,
			Login:  c.Login,
			Ts:     c.At.UTC(),
		})
	}
}
