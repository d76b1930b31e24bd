package tui

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWaitSessionsBlocksUntilFlushed(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}

	var flushed atomic.Int32
	conns := make([]context.CancelFunc, 3)
	for i := range conns {
		ctx, cancel := context.WithCancel(context.Background())
		conns[i] = cancel
		srv.closeOnDone(ctx, func() { flushed.Add(1) })
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if err := srv.waitSessions(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("waitSessions() with open connections = %v, want deadline exceeded", err)
	}

	for _, cancel := range conns {
		cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.waitSessions(ctx); err != nil {
		t.Fatalf("waitSessions() after disconnect = %v", err)
	}
	if got := flushed.Load(); got != 3 {
		t.Errorf("flushed %d sessions, want 3", got)
	}
}

func TestWaitSessionsWithNoSessions(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}
	if err := srv.waitSessions(context.Background()); err != nil {
		t.Errorf("waitSessions() = %v, want nil", err)
	}
}
