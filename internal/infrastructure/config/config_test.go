package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	home := t.TempDir()
	return NewLoaderAt(filepath.Join(home, "kanboard", "config.yml"), home)
}

func TestLoader_CreatesDefaults(t *testing.T) {
	loader := newTestLoader(t)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.FileExists(t, loader.GetConfigPath())
	assert.DirExists(t, cfg.Storage.DataPath)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)

	columns, err := cfg.Board.Resolve()
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultColumns(), columns)
}

func TestLoader_OverlaysFileOnDefaults(t *testing.T) {
	loader := newTestLoader(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(loader.GetConfigPath()), 0755))
	require.NoError(t, os.WriteFile(loader.GetConfigPath(), []byte(`
storage:
  backend: redis
  timeout: 2s
  redis:
    addr: redis:6379
board:
  columns:
    - title: Ideas
    - id: ship
      title: Shipping
      color: "#00FF00"
`), 0644))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 2*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "cards", cfg.Storage.Snapshot, "unset fields keep defaults")
	assert.Equal(t, "kanboardd.sock", cfg.Daemon.SocketName)

	columns, err := cfg.Board.Resolve()
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "ideas", columns[0].ID())
	assert.Equal(t, "ship", columns[1].ID())
	assert.Equal(t, "#00FF00", columns[1].Color())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.Storage.Backend = BackendS3 }},
		{"redis without addr", func(c *Config) { c.Storage.Backend = BackendRedis; c.Storage.Redis.Addr = "" }},
		{"no columns", func(c *Config) { c.Board.Columns = nil }},
		{"duplicate column", func(c *Config) {
			c.Board.Columns = []ColumnConfig{{Title: "Done"}, {ID: "done", Title: "Finished"}}
		}},
		{"trash column", func(c *Config) { c.Board.Columns = []ColumnConfig{{Title: "Trash"}} }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default(t.TempDir()).Validate())
}

func TestBoardConfig_ResolveDedupesGeneratedIDs(t *testing.T) {
	columns, err := BoardConfig{Columns: []ColumnConfig{{Title: "Done"}, {Title: "done!"}}}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "done", columns[0].ID())
	assert.Equal(t, "done-2", columns[1].ID())
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	loader := newTestLoader(t)
	initial, err := loader.Load()
	require.NoError(t, err)

	w, err := NewWatcher(loader, initial, zap.NewNop(), WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan *Config, 1)
	w.OnChange(func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})

	next := Default(t.TempDir())
	next.Logging.Level = "debug"
	require.NoError(t, loader.Save(next))

	select {
	case cfg := <-changed:
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "debug", w.Current().Logging.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}

func TestWatcher_IgnoresInvalidEdit(t *testing.T) {
	loader := newTestLoader(t)
	initial, err := loader.Load()
	require.NoError(t, err)

	w, err := NewWatcher(loader, initial, zap.NewNop(), WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(loader.GetConfigPath(), []byte("storage: [broken"), 0644))
	time.Sleep(200 * time.Millisecond)

	assert.Same(t, initial, w.Current())
}
