package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/reenamhotel/site/internal/domain"
)

// Dispatcher sends notifications in the background.
// Notify returns immediately; Close waits for in-flight sends.
type Dispatcher struct {
	n       Notifier
	log     *slog.Logger
	timeout time.Duration
	backoff func() retry.Backoff

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout bounds a single notification including retries. Default 30s.
func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) { disp.timeout = d }
}

// WithBackoff replaces the retry schedule. The factory is called once per
// notification because go-retry backoffs are stateful.
func WithBackoff(f func() retry.Backoff) Option {
	return func(disp *Dispatcher) { disp.backoff = f }
}

// DefaultBackoff is three attempts in total, starting at 500ms and doubling.
func DefaultBackoff() retry.Backoff {
	return retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
}

// NewDispatcher wraps n for asynchronous delivery.
func NewDispatcher(n Notifier, log *slog.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		n:       n,
		log:     log,
		timeout: 30 * time.Second,
		backoff: DefaultBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify schedules a notification for b. The request context only
// contributes its values (request id); cancelling it does not stop the send.
func (d *Dispatcher) Notify(ctx context.Context, b domain.Booking) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.WarnContext(ctx, "notification dropped, dispatcher closed", "booking_id", b.ID)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	sendCtx := context.WithoutCancel(ctx)
	go func() {
		defer d.wg.Done()
		if err := d.send(sendCtx, b); err != nil {
			d.log.ErrorContext(sendCtx, "error sending booking email", "booking_id", b.ID, "error", err)
			return
		}
		d.log.DebugContext(sendCtx, "booking email sent", "booking_id", b.ID)
	}()
}

func (d *Dispatcher) send(ctx context.Context, b domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	attempt := 0
	return retry.Do(ctx, d.backoff(), func(ctx context.Context) error {
		attempt++
		err := d.n.Send(ctx, b)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return err
		}
		d.log.WarnContext(ctx, "booking email attempt failed", "booking_id", b.ID, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})
}

// Close stops accepting notifications and waits for in-flight sends until
// ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify.Dispatcher.Close: %w", ctx.Err())
	}
}
