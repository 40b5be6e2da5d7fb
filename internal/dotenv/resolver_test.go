package dotenv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/envresolve/internal/environ"
	"github.com/eugenenazirov/envresolve/internal/filestore"
)

func modeEnv(mode Mode) *environ.Map {
	return environ.NewMap(map[string]string{DefaultModeVar: string(mode)})
}

func TestResolvePrefersMostSpecificAndStopsProbing(t *testing.T) {
	t.Parallel()

	for _, mode := range Modes() {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			candidates := Candidates(mode)
			files := map[string]string{}
			for _, name := range candidates {
				files[name] = "K=" + name
			}
			store := filestore.NewMemory(files)

			got, ok := NewResolver(store, modeEnv(mode)).Resolve(context.Background())
			require.True(t, ok)
			assert.Equal(t, candidates[0], got)
			assert.Equal(t, []string{candidates[0]}, store.Probed())
		})
	}
}

func TestResolveFallsThroughInPriorityOrder(t *testing.T) {
	t.Parallel()

	store := filestore.NewMemory(map[string]string{".env.test": "", ".env": ""})

	got, ok := NewResolver(store, modeEnv(Test)).Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, ".env.test", got)
	assert.Equal(t, []string{".env.test.local", ".env.local", ".env.test"}, store.Probed())
}

func TestResolveNoneFound(t *testing.T) {
	t.Parallel()

	store := filestore.NewMemory(nil)

	_, ok := NewResolver(store, modeEnv(Production)).Resolve(context.Background())
	assert.False(t, ok)
	assert.Equal(t, Candidates(Production), store.Probed())
}

func TestResolveDefaultsToDevelopment(t *testing.T) {
	t.Parallel()

	store := filestore.NewMemory(map[string]string{".env.development": "", ".env.test": ""})

	got, ok := NewResolver(store, environ.NewMap(nil)).Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, ".env.development", got)
}

func TestResolveUnknownModeProbesNothing(t *testing.T) {
	t.Parallel()

	store := filestore.NewMemory(map[string]string{".env": ""})

	_, ok := NewResolver(store, modeEnv("staging")).Resolve(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.Probed())
}

func TestResolveCustomModeVar(t *testing.T) {
	t.Parallel()

	store := filestore.NewMemory(map[string]string{".env.production": ""})
	env := environ.NewMap(map[string]string{"NODE_ENV": "production", DefaultModeVar: "test"})

	got, ok := NewResolver(store, env, WithModeVar("NODE_ENV")).Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, ".env.production", got)
}

func TestResolveSkipsFailingExistenceCheck(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	store := filestore.NewMemory(map[string]string{".env.test.local": "", ".env": ""})
	store.FailExists(".env.test.local", errors.New("permission denied"))

	got, ok := NewResolver(store, modeEnv(Test), WithLogger(zap.New(core))).Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, ".env", got)

	entries := logs.FilterMessage("env file existence check failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, ".env.test.local", entries[0].ContextMap()["file"])
}

func TestResolveAllReturnsEveryExistingCandidate(t *testing.T) {
	t.Parallel()

	store := filestore.NewMemory(map[string]string{".env": "", ".env.local": "", ".env.development.local": ""})

	got := NewResolver(store, environ.NewMap(nil)).ResolveAll(context.Background())
	assert.Equal(t, []string{".env.development.local", ".env.local", ".env"}, got)
	assert.Equal(t, Candidates(Development), store.Probed())
}
