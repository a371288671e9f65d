// Package server implements the TCP listener and per-connection handler
// loop: an admission-gated accept loop with exponential backoff, and a
// broadcast-shutdown-then-drain lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/google/uuid"

	"redis-lite/command"
	"redis-lite/conn"
	"redis-lite/resp"
	"redis-lite/shutdown"
	"redis-lite/store"
)

// DefaultMaxConnections is the admission gate's default capacity.
const DefaultMaxConnections = 250

const (
	initialBackoff = time.Second
	maxBackoff     = 64 * time.Second
)

// Config configures Run.
type Config struct {
	// MaxConnections caps concurrently active connections. Zero selects
	// DefaultMaxConnections.
	MaxConnections int64
	// Logger receives structured lifecycle and error events. Nil selects
	// slog.Default().
	Logger *slog.Logger
}

// Run accepts connections on ln until ctx is canceled or an
// unrecoverable accept error occurs, then broadcasts shutdown to every
// live connection handler and waits for them to exit before returning.
func Run(ctx context.Context, ln net.Listener, cfg Config) error {
	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	guard := store.New()
	l := &listener{
		ln:       ln,
		store:    guard,
		sem:      semaphore.NewWeighted(maxConns),
		notifier: shutdown.NewNotifier(),
		logger:   logger,
	}

	acceptErr := make(chan error, 1)
	go func() { acceptErr <- l.acceptLoop(ctx) }()

	var runErr error
	select {
	case err := <-acceptErr:
		if err != nil {
			logger.Error("accept loop terminated", "error", err)
			runErr = err
		}
	case <-ctx.Done():
		logger.Info("shutdown requested, closing listener")
		_ = ln.Close()
		if err := <-acceptErr; err != nil {
			logger.Error("accept loop terminated", "error", err)
			runErr = err
		}
	}

	l.notifier.Notify()
	l.wg.Wait()
	guard.Shutdown()

	return runErr
}

type listener struct {
	ln       net.Listener
	store    *store.DropGuard
	sem      *semaphore.Weighted
	notifier *shutdown.Notifier
	wg       sync.WaitGroup
	logger   *slog.Logger
}

func (l *listener) acceptLoop(ctx context.Context) error {
	for {
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return nil
		}

		nc, err := l.acceptWithBackoff(ctx)
		if err != nil {
			l.sem.Release(1)
			if isShutdownAcceptError(err) {
				return nil
			}
			return err
		}

		l.wg.Add(1)
		go l.handle(nc)
	}
}

// isShutdownAcceptError reports whether err is Accept's expected way of
// telling us the listener was closed out from under it, rather than a
// transient I/O failure worth retrying.
func isShutdownAcceptError(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// acceptWithBackoff retries transient accept errors with exponential
// backoff (1s,2s,4s,8s,16s,32s,64s), surfacing the error once a 64-second
// wait itself fails to recover.
func (l *listener) acceptWithBackoff(ctx context.Context) (net.Conn, error) {
	backoff := initialBackoff
	for {
		nc, err := l.ln.Accept()
		if err == nil {
			return nc, nil
		}
		if isShutdownAcceptError(err) {
			return nil, err
		}
		if backoff > maxBackoff {
			return nil, fmt.Errorf("server: accept: %w", err)
		}
		l.logger.Warn("accept error, retrying", "error", err, "backoff", backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
}

func (l *listener) handle(nc net.Conn) {
	defer l.wg.Done()
	defer l.sem.Release(1)
	defer nc.Close()

	id := uuid.NewString()
	logger := l.logger.With("conn_id", id, "remote_addr", nc.RemoteAddr().String())
	logger.Debug("connection accepted")

	c := conn.New(nc)
	sig := l.notifier.Subscribe()
	st := l.store.Store()

	for !sig.IsShutdown() {
		frame, err, shuttingDown := readFrameOrShutdown(c, sig)
		if shuttingDown {
			sig.Recv()
			logger.Debug("shutdown received, closing connection")
			return
		}
		if err != nil {
			logger.Warn("connection read error", "error", err)
			return
		}
		if frame == nil {
			logger.Debug("connection closed by peer")
			return
		}

		cmd, err := command.FromFrame(frame)
		if err != nil {
			logger.Warn("protocol error", "error", err)
			_ = c.WriteFrame(resp.SimpleError{Value: err.Error()})
			return
		}
		if err := cmd.Apply(st, c); err != nil {
			logger.Warn("command apply error", "error", err)
			return
		}
		logger.Debug("command applied")
	}
}

// readFrameOrShutdown races a blocking frame read against the shutdown
// signal. If shutdown fires first, the read goroutine is left running; it
// unblocks once the caller closes nc (deferred in handle), at which point
// it discards its result into the buffered channel and exits.
func readFrameOrShutdown(c *conn.Conn, sig *shutdown.Signal) (resp.Frame, error, bool) {
	type result struct {
		frame resp.Frame
		err   error
	}
	resCh := make(chan result, 1)
	go func() {
		f, err := c.ReadFrame()
		resCh <- result{f, err}
	}()

	select {
	case r := <-resCh:
		return r.frame, r.err, false
	case <-sig.Done():
		return nil, nil, true
	}
}
