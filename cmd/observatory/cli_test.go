package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tucker-bin/noctua-forest-sub005/internal/config"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
)

// run executes the CLI with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OBSERVATORY_CONFIG", "")
	t.Chdir(t.TempDir())

	root := newRootCmd(&app{logger: zap.NewNop()})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyze_JSON(t *testing.T) {
	out, err := run(t, "moon June soon", "analyze", "--json")
	require.NoError(t, err)

	var ps []pattern.Pattern
	require.NoError(t, json.Unmarshal([]byte(out), &ps))
	require.NotEmpty(t, ps)
	assert.Equal(t, pattern.Rhyme, ps[0].Type)
	assert.Equal(t, "moon June soon", ps[0].OriginalText)
}

func TestAnalyze_Table(t *testing.T) {
	out, err := run(t, "moon June soon", "analyze", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "rhyme")
	assert.Contains(t, out, "moon June soon")
}

func TestAnalyze_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poem.txt")
	require.NoError(t, os.WriteFile(path, []byte("Peter Piper picked a peck\n"), 0o600))

	out, err := run(t, "", "analyze", path, "--max", "1", "--json")
	require.NoError(t, err)

	var ps []pattern.Pattern
	require.NoError(t, json.Unmarshal([]byte(out), &ps))
	assert.Len(t, ps, 1)
}

func TestAnalyze_MultipleInputsShareCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poem.txt")
	require.NoError(t, os.WriteFile(path, []byte("moon June soon"), 0o600))
	prom := filepath.Join(dir, "observatory.prom")
	t.Setenv("METRICS_TEXTFILE", prom)

	out, err := run(t, "", "analyze", path, path, "--json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var first, second []pattern.Pattern
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, first, second)
	assert.False(t, dec.More())

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "observatory_cache_hits_total 1")
	assert.Contains(t, string(data), "observatory_cache_misses_total 1")
}

func TestAnalyze_MultipleInputsTable(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("moon June soon"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("Peter Piper picked a peck"), 0o600))

	out, err := run(t, "", "analyze", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "==> "+a+" <==")
	assert.Contains(t, out, "==> "+b+" <==")
	assert.Less(t, strings.Index(out, a), strings.Index(out, b))
}

func TestAnalyze_Report(t *testing.T) {
	out, err := run(t, "luna sol mar", "analyze", "--report", "--lang", "es-MX")
	require.NoError(t, err)

	var rep struct {
		Language string `json:"language"`
		Segments []json.RawMessage
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "es", rep.Language)
	assert.Len(t, rep.Segments, 3)
}

func TestAnalyze_Empty(t *testing.T) {
	out, err := run(t, "   \n", "analyze", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestAnalyze_InputCeiling(t *testing.T) {
	_, err := run(t, strings.Repeat("a", 5001), "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 5000")
}

func TestAnalyze_InvalidUTF8(t *testing.T) {
	_, err := run(t, "moon \xff", "analyze")
	require.Error(t, err)
}

func TestTranscribe(t *testing.T) {
	out, err := run(t, "", "transcribe", "--json", "moon")
	require.NoError(t, err)

	var trs []struct {
		Form     string `json:"form"`
		RhymeKey string `json:"rhymeKey"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &trs))
	require.Len(t, trs, 1)
	assert.Equal(t, "mˈoon", trs[0].Form)
	assert.Equal(t, "oon", trs[0].RhymeKey)
}

func TestProfiles(t *testing.T) {
	out, err := run(t, "", "profiles")
	require.NoError(t, err)
	for _, code := range []string{"en", "es", "fr", "de", "it", "pt", "ru"} {
		assert.Contains(t, out, code)
	}
	assert.Contains(t, out, "Cyrl")
}

func TestBuildLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lc      config.LogConfig
		verbose bool
		debug   bool
		wantErr bool
	}{
		{"json info", config.LogConfig{Level: "info", Format: "json"}, false, false, false},
		{"console verbose", config.LogConfig{Level: "warn", Format: "console"}, true, true, false},
		{"upper case", config.LogConfig{Level: "DEBUG", Format: "json"}, false, true, false},
		{"bad level", config.LogConfig{Level: "loud", Format: "json"}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := buildLogger(tt.lc, tt.verbose)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, l.Core().Enabled(zap.DebugLevel))
		})
	}
}
