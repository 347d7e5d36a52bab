package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typist/internal/config"
	"github.com/verte-zerg/typist/internal/corpus"
	"github.com/verte-zerg/typist/internal/model"
)

func stringPtr(v string) *string  { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestApplyPracticeConfigKeepsExplicitFlags(t *testing.T) {
	flags := &practiceFlags{}
	cmd := newRootCmd(flags)
	require.NoError(t, cmd.ParseFlags([]string{"--mode", "words", "--words", "10"}))

	applyPracticeConfig(cmd, flags, config.PracticeConfig{
		Lang:     stringPtr("german"),
		Mode:     stringPtr("quote"),
		Words:    intPtr(50),
		Time:     intPtr(30),
		Punct:    boolPtr(true),
		PunctPct: floatPtr(55),
	})

	assert.Equal(t, "german", flags.lang)
	assert.Equal(t, "words", flags.mode)
	assert.Equal(t, 10, flags.words)
	assert.Equal(t, 30, flags.seconds)
	assert.True(t, flags.punct)
	assert.InDelta(t, 55, flags.punctPct, 1e-9)
	assert.InDelta(t, defaultNumbersPct, flags.numbersPct, 1e-9)
}

func TestBuildConfigWordsMode(t *testing.T) {
	flags := &practiceFlags{}
	cmd := newRootCmd(flags)
	require.NoError(t, cmd.ParseFlags([]string{"--mode", "words", "--words", "10", "--punct", "--data-dir", "/tmp/data"}))

	cfg, err := buildConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, corpus.Language("english"), cfg.Lang)
	assert.Equal(t, model.WordsMode{Count: 10, Punctuation: true}, cfg.Mode)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, corpus.AllQuoteLengths, cfg.QuoteLengths)
}

func TestBuildConfigQuoteLengths(t *testing.T) {
	flags := &practiceFlags{}
	cmd := newRootCmd(flags)
	require.NoError(t, cmd.ParseFlags([]string{"--mode", "quote", "--quote", "short,long"}))

	cfg, err := buildConfig(flags)
	require.NoError(t, err)
	assert.Equal(t, model.QuoteMode{Lengths: []corpus.QuoteLength{corpus.Short, corpus.Long}}, cfg.Mode)
}

func TestBuildConfigRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "mode", args: []string{"--mode", "zen"}, want: "unknown mode"},
		{name: "time", args: []string{"--time", "0"}, want: "--time must be > 0"},
		{name: "words", args: []string{"--words", "0"}, want: "--words must be > 0"},
		{name: "quote", args: []string{"--quote", "tiny"}, want: "invalid --quote value"},
		{name: "punct-pct", args: []string{"--punct-pct", "101"}, want: "--punct-pct"},
		{name: "numbers-pct", args: []string{"--numbers-pct", "2"}, want: "--numbers-pct"},
		{name: "punct-pct NaN", args: []string{"--punct-pct", "NaN"}, want: "--punct-pct"},
		{name: "numbers-pct NaN", args: []string{"--numbers-pct", "NaN"}, want: "--numbers-pct"},
		{name: "time limit", args: []string{"--time", "3601"}, want: "--time must be <="},
		{name: "lang", args: []string{"--lang", " "}, want: "--lang"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flags := &practiceFlags{}
			cmd := newRootCmd(flags)
			require.NoError(t, cmd.ParseFlags(tc.args))

			_, err := buildConfig(flags)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLogOptionsUsesFileValues(t *testing.T) {
	flags := &practiceFlags{logFile: "/tmp/typist.log", logLevel: "debug"}

	opts := logOptions(flags, config.LogConfig{MaxSizeMB: intPtr(1), MaxAgeDays: intPtr(2)})

	assert.Equal(t, "/tmp/typist.log", opts.File)
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, 1, opts.MaxSizeMB)
	assert.Equal(t, defaultLogBackups, opts.MaxBackups)
	assert.Equal(t, 2, opts.MaxAgeDays)
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	tmpl := defaultConfigTemplate()
	assert.Contains(t, tmpl, "[practice]")
	assert.Contains(t, tmpl, "[log]")

	var cfg config.FileConfig
	_, err := toml.Decode(tmpl, &cfg)
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Mode)

	uncommented := strings.ReplaceAll(tmpl, "# mode = ", "mode = ")
	_, err = toml.Decode(uncommented, &cfg)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Mode)
	assert.Equal(t, defaultMode, *cfg.Practice.Mode)
}

func TestPreflightReportsMissingLanguage(t *testing.T) {
	dir := t.TempDir()
	err := preflight(corpus.NewStore(dir, nil), "klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `language "klingon" not found`)
	assert.Contains(t, err.Error(), filepath.Join(dir, "languages", "klingon.json"))
}

func TestLangsCommandListsLanguages(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	langDir := filepath.Join(dir, "languages")
	require.NoError(t, os.MkdirAll(langDir, 0o755))
	for _, name := range []string{"english", "german"} {
		data := `{"name":"` + name + `","words":["ab"]}`
		require.NoError(t, os.WriteFile(filepath.Join(langDir, name+".json"), []byte(data), 0o644))
	}

	cmd := newRootCmd(&practiceFlags{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"langs", "--data-dir", dir})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "english\ngerman\n", out.String())
}

func TestLangsCommandEmptyDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	cmd := newRootCmd(&practiceFlags{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"langs", "--data-dir", dir})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no languages found")
}

func TestPresetList(t *testing.T) {
	assert.Equal(t, "15/30/60/120", presetList(model.TimePresets))
	assert.Empty(t, presetList(nil))
}
