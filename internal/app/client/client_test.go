package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"retailsync/internal/app/client/config"
	"retailsync/internal/domain/partition"
	"retailsync/internal/domain/sync"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApp_Offline(t *testing.T) {
	cfg := &config.Config{DataPath: t.TempDir(), Username: "alice"}

	app, err := New(cfg, testLogger())
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	data := partition.UserPartition{Items: []json.RawMessage{json.RawMessage(`{"id":"i1"}`)}}

	saved, err := app.Save(ctx, "alice", data)
	require.NoError(t, err)
	assert.False(t, saved.Synced)
	assert.NotEmpty(t, saved.Warning)

	loaded, err := app.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, sync.SourceLocal, loaded.Source)
	assert.Len(t, loaded.Partition.Items, 1)

	report, err := app.Usage(ctx)
	require.NoError(t, err)
	assert.False(t, report.RemoteAvailable)

	status, err := app.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.RemoteReachable)
	assert.Equal(t, []string{"alice"}, status.LocalUsers)
}

func TestApp_Remote(t *testing.T) {
	var stored []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if stored == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(stored)
		case http.MethodPut:
			stored, _ = io.ReadAll(r.Body)
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		DataPath: t.TempDir(),
		Remote:   config.Remote{URL: server.URL, DocumentID: "shop", APIKey: "key"},
		Sync:     config.Sync{MaxRetries: 1},
	}
	require.True(t, cfg.RemoteConfigured())

	app, err := New(cfg, testLogger())
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()

	saved, err := app.Save(ctx, "bob", partition.UserPartition{Goals: []json.RawMessage{json.RawMessage(`1`)}})
	require.NoError(t, err)
	assert.True(t, saved.Synced)

	loaded, err := app.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, sync.SourceRemote, loaded.Source)
	assert.Len(t, loaded.Partition.Goals, 1)

	report, err := app.Usage(ctx)
	require.NoError(t, err)
	assert.True(t, report.RemoteAvailable)
	assert.Equal(t, 1, report.TotalUsage.Users)
}

func TestApp_Username(t *testing.T) {
	app := &App{config: &config.Config{Username: "carol"}}

	name, err := app.Username("")
	require.NoError(t, err)
	assert.Equal(t, "carol", name)

	name, err = app.Username("dave")
	require.NoError(t, err)
	assert.Equal(t, "dave", name)

	app.config.Username = ""
	_, err = app.Username("")
	assert.ErrorIs(t, err, sync.ErrValidation)
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.Error(t, err)

	app := &App{}
	got, err := FromContext(WithApp(context.Background(), app))
	require.NoError(t, err)
	assert.Same(t, app, got)
}
