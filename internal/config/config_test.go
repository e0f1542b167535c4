package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"JAVALEARN_DB", "JAVALEARN_LOG_LEVEL", "JAVALEARN_AUTO_ADVANCE",
		"JAVALEARN_SPEECH_CMD", "JAVALEARN_BANKS", "JAVALEARN_LLM_PROVIDER",
	} {
		t.Setenv(k, "")
	}
	// Keep any developer .env out of the test.
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.AutoAdvance)
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, `
db_path: /tmp/jl.db
log_level: debug
auto_advance: 3s
narration:
  command: espeak
  rate: 160
question_banks:
  - /tmp/bank.yaml
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/jl.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.AutoAdvance)
	assert.Equal(t, "espeak", cfg.Narration.Command)
	assert.Equal(t, 160, cfg.Narration.Rate)
	assert.Equal(t, []string{"/tmp/bank.yaml"}, cfg.QuestionBanks)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, "log_level: debug\nauto_advance: 3s\n")
	t.Setenv("JAVALEARN_LOG_LEVEL", "WARN")
	t.Setenv("JAVALEARN_AUTO_ADVANCE", "1500ms")
	t.Setenv("JAVALEARN_DB", "/data/x.db")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 1500*time.Millisecond, cfg.AutoAdvance)
	assert.Equal(t, "/data/x.db", cfg.DBPath)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to "".
	os.Unsetenv("JAVALEARN_SPEECH_CMD")
	require.NoError(t, os.WriteFile(".env", []byte("JAVALEARN_SPEECH_CMD=say\n"), 0o644))

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "say", cfg.Narration.Command)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad level", "log_level: loud\n"},
		{"negative rate", "narration:\n  rate: -1\n"},
		{"bad yaml", "log_level: [\n"},
		{"advance too long", "auto_advance: 5m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadDurationEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JAVALEARN_AUTO_ADVANCE", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	d, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "javalearn"), d)
}
