package mcp

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/kobaltcore/renutil/internal/core/config"
	"github.com/kobaltcore/renutil/internal/core/instance"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	env := config.Environment{
		CacheRoot: t.TempDir(),
		BaseURL:   config.DefaultBaseURL,
	}
	return NewServer(instance.NewManager(env), "test")
}

func TestServerStopsOnContextCancel(t *testing.T) {
	s := testServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pipe with no writer blocks reads; only the canceled context can
	// make serve return.
	in, _ := io.Pipe()
	err := s.serve(ctx, in, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("serve returned %v, want context.Canceled", err)
	}
}
