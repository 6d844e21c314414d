package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkglog"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
	"github.com/shandysiswandi/gomdc/internal/user/entity"
)

var errNoRecipient = errors.New("notify: user has no email address")

// Mailer pretends to send emails by logging them.
type Mailer struct {
	from string
}

func NewMailer(from string) *Mailer {
	return &Mailer{from: from}
}

// SendWelcome greets a newly created user. It expects to run on a pool worker
// and reports the correlation id and principal of the request that created
// the user.
func (m *Mailer) SendWelcome(ctx context.Context, user entity.User) error {
	if user.Email == "" {
		return errNoRecipient
	}

	cid, _ := pkglog.Get(ctx, pkglog.KeyCorrelationID)
	slog.InfoContext(ctx, "sending welcome email",
		"from", m.from,
		"to", user.Email,
		"name", user.Name,
		"correlation_id", cid,
	)

	info, ok := pkgtenant.Get(ctx)
	if !ok {
		slog.InfoContext(ctx, "welcome email requested anonymously")
		return nil
	}
	slog.InfoContext(ctx, "welcome email requested by", "user_name", info.UserName)

	return nil
}
