package config

import (
	"path/filepath"
	"time"

	"kanboard/internal/domain/entity"
)

// Default returns the configuration written on first run
func Default(homeDir string) *Config {
	dataDir := filepath.Join(homeDir, defaultDataDirName)

	columns := make([]ColumnConfig, 0, 4)
	for _, col := range entity.DefaultColumns() {
		columns = append(columns, ColumnConfig{ID: col.ID(), Title: col.Title(), Color: col.Color()})
	}

	return &Config{
		Storage: StorageConfig{
			Backend:  BackendFile,
			Snapshot: "cards",
			DataPath: dataDir,
			Timeout:  5 * time.Second,
			S3: S3Config{
				Region:       "us-east-1",
				UsePathStyle: true,
			},
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
			Breaker: BreakerConfig{
				Enabled:          true,
				Timeout:          15 * time.Second,
				FailureThreshold: 0.6,
				MinRequests:      3,
			},
		},
		Board: BoardConfig{
			Columns: columns,
		},
		Daemon: DaemonConfig{
			SocketDir:  dataDir,
			SocketName: "kanboardd.sock",
		},
		HTTP: HTTPConfig{
			Enabled:        true,
			Addr:           "127.0.0.1:7420",
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Column: ColumnStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				FocusedColumn: ColumnStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				TrashColumn: ColumnStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "#FF6B6B",
				},
				ColumnTitle: TextStyle{
					Foreground: "99",
					Bold:       true,
					Align:      "center",
				},
				Card: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedCard: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				CarriedCard: TextStyle{
					Foreground:        "#1E1E1E",
					Background:        "#FFE66D",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingVertical:   1,
					PaddingHorizontal: 2,
				},
				Status: TextStyle{
					Foreground: "#A8DADC",
					Italic:     true,
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:     []string{"up", "k"},
			Down:   []string{"down", "j"},
			Left:   []string{"left", "h"},
			Right:  []string{"right", "l"},
			PickUp: []string{" ", "m"},
			Drop:   []string{"enter"},
			Trash:  []string{"x"},
			Cancel: []string{"esc"},
			Add:    []string{"a"},
			Delete: []string{"d"},
			Quit:   []string{"q", "ctrl+c"},
		},
	}
}
