package realtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/finance"
)

// Channel is the Postgres notification channel carrying transaction changes.
// Triggers in schema.sql emit one payload per row-level change.
const Channel = "transactions_changed"

// Listener subscribes to the transaction change feed and delivers decoded
// events to an apply function, typically Snapshot.Apply. The feed is
// best-effort: on connection loss it reconnects with backoff and the caller
// is expected to reseed the snapshot with a full fetch.
type Listener struct {
	DB      *db.Postgres
	Logger  *slog.Logger
	Backoff time.Duration

	// OnReconnect is called after the LISTEN is re-established so the owner
	// can reseed the local collection; events missed while disconnected are
	// gone.
	OnReconnect func(ctx context.Context) error
}

// Run blocks until ctx is cancelled, applying each change event in order.
func (l Listener) Run(ctx context.Context, apply func(finance.ChangeEvent)) error {
	backoff := l.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	for {
		err := l.listen(ctx, apply)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}
		l.Logger.Error("change feed disconnected", "err", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func (l Listener) listen(ctx context.Context, apply func(finance.ChangeEvent)) error {
	conn, err := l.DB.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "listen "+Channel); err != nil {
		return err
	}
	l.Logger.Info("change feed listening", "channel", Channel)

	if l.OnReconnect != nil {
		if err := l.OnReconnect(ctx); err != nil {
			return err
		}
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		ev, err := DecodeEvent([]byte(notification.Payload))
		if err != nil {
			// A malformed payload is logged and skipped; one bad row must
			// not take the feed down.
			l.Logger.Error("bad change payload", "err", err)
			continue
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		apply(ev)
	}
}
