package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/newsletter-agent/agents"
	"github.com/va6996/newsletter-agent/bootstrap"
	"github.com/va6996/newsletter-agent/content"
)

// primerResponder echoes the system prompt so tests can see the priming.
type primerResponder struct{}

func (primerResponder) Respond(ctx context.Context, req agents.ChatRequest) (string, error) {
	return req.System + "\n--\n" + req.Prompt, nil
}

func TestRunOnce(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, content.PrimaryDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, content.BriefingFile), []byte("Cover the launch."), 0o644))

	app := &bootstrap.App{
		Paths:     content.DefaultLayout(root).Resolve(),
		Responder: primerResponder{},
	}

	var out bytes.Buffer
	require.NoError(t, runOnce(context.Background(), app, DefaultQuery, &out))

	assert.Contains(t, out.String(), "=== BRIEFING ===\nCover the launch.")
	assert.Contains(t, out.String(), "[Error loading editorial guidelines:")
	assert.Contains(t, out.String(), "--\n"+DefaultQuery+"\n")
}

func TestShutdownServer(t *testing.T) {
	t.Run("Idle", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		srv := &http.Server{Handler: http.NotFoundHandler()}
		go srv.Serve(ln)

		assert.NoError(t, shutdownServer(srv, time.Second))
	})

	t.Run("TimeoutWithRequestInFlight", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		defer close(release)

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
		})}
		go srv.Serve(ln)

		go http.Get("http://" + ln.Addr().String() + "/")
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("request never reached the handler")
		}

		err = shutdownServer(srv, 50*time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
