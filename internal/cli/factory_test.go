package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supraja777/multiagent/internal/config"
	"github.com/supraja777/multiagent/internal/logging"
	"github.com/supraja777/multiagent/internal/testutils"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/persistence/middleware"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Gateway.Provider = config.ProviderGroq
	cfg.Gateway.APIKey = ""
	cfg.Tools.Search.APIKey = ""
	cfg.Tools.Code.Confirm = false
	cfg.Archive.Backend = config.ArchiveMemory
	cfg.Archive.Redact = true
	return cfg
}

func TestNewArchive_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name      string
		configure func(*config.Config)
		wantNil   bool
		wantClose bool
	}{
		{"none", func(c *config.Config) { c.Archive.Backend = config.ArchiveNone }, true, false},
		{"memory", func(c *config.Config) {}, false, false},
		{"file", func(c *config.Config) {
			c.Archive.Backend = config.ArchiveFile
			c.Archive.Dir = t.TempDir()
		}, false, false},
		{"redis", func(c *config.Config) {
			c.Archive.Backend = config.ArchiveRedis
			c.Archive.RedisAddr = mr.Addr()
			c.Archive.TTL = time.Hour
		}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.configure(cfg)

			store, closeFn, err := newArchive(cfg)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, store)
				return
			}
			require.NotNil(t, store)
			assert.Equal(t, tt.wantClose, closeFn != nil)
			if closeFn != nil {
				defer closeFn()
			}

			ctx := context.Background()
			require.NoError(t, store.Save(ctx, &domain.Transcript{
				RunID:   "run-1",
				Request: "my key is gsk_abcdefghijklmnopqrstuvwx",
				Status:  domain.StatusFinished,
			}))
			loaded, err := store.Load(ctx, "run-1")
			require.NoError(t, err)
			assert.Equal(t, "my key is "+middleware.Mask, loaded.Request)
		})
	}
}

func TestNewArchive_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive.Backend = "postgres"

	_, _, err := newArchive(cfg)
	assert.ErrorContains(t, err, "unsupported archive backend")
}

func TestNewSearchTool_RequiresKey(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, newSearchTool(cfg))

	cfg.Tools.Search.APIKey = "tvly-test"
	tool := newSearchTool(cfg)
	require.NotNil(t, tool)
	assert.Equal(t, "web_search", tool.Definition().Name)
}

func TestNewCodeTool(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.Code.Enabled = false
	tool, err := newCodeTool(cfg)
	require.NoError(t, err)
	assert.Nil(t, tool)

	cfg.Tools.Code.Enabled = true
	tool, err = newCodeTool(cfg)
	require.NoError(t, err)
	require.NotNil(t, tool)
	assert.Equal(t, "execute_code", tool.Definition().Name)
}

func TestNewGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		cfg := testConfig(t)
		_, err := newGateway(ctx, cfg, logging.NewNop())
		assert.ErrorContains(t, err, "GROQ_API_KEY")
	})

	t.Run("groq", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Gateway.APIKey = "gsk_test"
		gw, err := newGateway(ctx, cfg, logging.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, gw)
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Gateway.Provider = "anthropic"
		cfg.Gateway.APIKey = "key"
		_, err := newGateway(ctx, cfg, logging.NewNop())
		assert.ErrorContains(t, err, "unsupported provider")
	})
}

func TestCreateEngine(t *testing.T) {
	cfg := testConfig(t)
	cfg.Orchestrator.MaxCycles = 3

	gw := testutils.NewScriptedGateway(
		testutils.Decide("coder", "arithmetic task"),
		testutils.Say("4"),
		testutils.Decide("FINISH", "correct"),
	)
	comps, err := createEngine(context.Background(), cfg, FactoryOptions{Gateway: gw})
	require.NoError(t, err)
	defer comps.Close()

	assert.Equal(t, 3, comps.Engine.MaxCycles())
	require.NotNil(t, comps.Archive)

	transcript, err := comps.Engine.Run(context.Background(), "2+2=?")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, transcript.Status)

	archived, err := comps.Archive.Load(context.Background(), transcript.RunID)
	require.NoError(t, err)
	assert.Equal(t, transcript.Path, archived.Path)
}
