package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "wire", cfg.Name)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Metrics)
	assert.False(t, cfg.Tracing)
	assert.Empty(t, cfg.Skip)
	assert.NoError(t, cfg.Validate())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Config{LogLevel: tt.in}.Level()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkipPatternsSorted(t *testing.T) {
	cfg := Config{Skip: map[string][]string{
		"order.*":   {"a"},
		"alpha":     {"b"},
		"order.new": {"c"},
	}}
	assert.Equal(t, []string{"alpha", "order.*", "order.new"}, cfg.SkipPatterns())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty name", Config{Name: " "}, "name is required"},
		{"bad level", Config{Name: "x", LogLevel: "loud"}, "unknown log level"},
		{"empty skip names", Config{Name: "x", Skip: map[string][]string{"a": {}}}, "no handler names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
name: orders
log_level: debug
metrics: true
skip:
  "order.*": [audit]
  order.cancelled: [mailer, sms]
`)

	cfg, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Metrics)
	assert.False(t, cfg.Tracing)
	assert.Equal(t, []string{"audit"}, cfg.Skip["order.*"])
	assert.Equal(t, []string{"mailer", "sms"}, cfg.Skip["order.cancelled"])
}

func TestFromYAMLKeepsDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte("tracing: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "wire", cfg.Name)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Tracing)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := FromYAML([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")

	_, err = FromYAML([]byte("log_level: shouting\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"name":"billing","tracing":true,"skip":{"invoice.*":["audit"]}}`))
	require.NoError(t, err)

	assert.Equal(t, "billing", cfg.Name)
	assert.True(t, cfg.Tracing)
	assert.Equal(t, []string{"audit"}, cfg.Skip["invoice.*"])

	_, err = FromJSON([]byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "wire.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: from-yaml\n"), 0o600))

		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-yaml", cfg.Name)
	})

	t.Run("yml", func(t *testing.T) {
		path := filepath.Join(dir, "wire.yml")
		require.NoError(t, os.WriteFile(path, []byte("name: from-yml\n"), 0o600))

		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-yml", cfg.Name)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "wire.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"from-json"}`), 0o600))

		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-json", cfg.Name)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "wire.toml")
		require.NoError(t, os.WriteFile(path, []byte(`name = "x"`), 0o600))

		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})
}
