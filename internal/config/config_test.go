package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esdeno/mediatype/internal/config"
	"github.com/esdeno/mediatype/internal/logger"
	"github.com/esdeno/mediatype/internal/mediatype"
	"github.com/esdeno/mediatype/internal/test"
)

func TestDefault(t *testing.T) {
	options := config.Default()
	test.AssertEqual(t, options.Precedence, mediatype.PreferHint)
	test.AssertEqual(t, options.LogLevel, logger.LevelInfo)
	test.AssertEqual(t, options.Color, logger.ColorIfTerminal)
	test.AssertEqual(t, options.ErrorLimit, config.DefaultErrorLimit)
	test.AssertEqual(t, options.EffectiveWorkers(), runtime.GOMAXPROCS(0))
}

func TestApplyYAML(t *testing.T) {
	options := config.Default()
	err := options.ApplyYAML([]byte(`
precedence: extension
logLevel: warning
color: false
errorLimit: 0
workers: 3
`))
	require.NoError(t, err)
	test.AssertEqual(t, options.Precedence, mediatype.PreferExtension)
	test.AssertEqual(t, options.LogLevel, logger.LevelWarning)
	test.AssertEqual(t, options.Color, logger.ColorNever)
	test.AssertEqual(t, options.ErrorLimit, 0)
	test.AssertEqual(t, options.Workers, 3)
	test.AssertEqual(t, options.EffectiveWorkers(), 3)
}

func TestApplyYAMLKeepsMissingFields(t *testing.T) {
	options := config.Default()
	options.Workers = 7
	require.NoError(t, options.ApplyYAML([]byte("color: true\n")))
	test.AssertEqual(t, options.Precedence, mediatype.PreferHint)
	test.AssertEqual(t, options.Color, logger.ColorAlways)
	test.AssertEqual(t, options.Workers, 7)

	require.NoError(t, options.ApplyYAML(nil))
	test.AssertEqual(t, options.Workers, 7)
}

func TestApplyYAMLErrors(t *testing.T) {
	check := func(contents string, expected string) {
		t.Helper()
		options := config.Default()
		err := options.ApplyYAML([]byte(contents))
		require.Error(t, err)
		require.Contains(t, err.Error(), expected)
	}

	check("precedence: filename\n", `invalid precedence: "filename"`)
	check("logLevel: verbose\n", `invalid log level: "verbose"`)
	check("workers: -1\n", "invalid worker count: -1")
	check("errorLimit: -5\n", "invalid error limit: -5")
	check("loaders: {}\n", "field loaders not found")
	check("workers: [\n", "yaml")
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediatype.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precedence: extension\n"), 0644))

	options := config.Default()
	require.NoError(t, options.ApplyFile(path))
	test.AssertEqual(t, options.Precedence, mediatype.PreferExtension)
	test.AssertEqual(t, options.LogLevel, logger.LevelInfo)

	err := options.ApplyFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("precedence: nope\n"), 0644))
	err = options.ApplyFile(path)
	require.ErrorContains(t, err, path)
}

func TestParsePrecedence(t *testing.T) {
	precedence, err := config.ParsePrecedence("hint")
	require.NoError(t, err)
	test.AssertEqual(t, precedence, mediatype.PreferHint)

	precedence, err = config.ParsePrecedence("extension")
	require.NoError(t, err)
	test.AssertEqual(t, precedence, mediatype.PreferExtension)

	_, err = config.ParsePrecedence("Hint")
	require.EqualError(t, err, `invalid precedence: "Hint" (valid: hint, extension)`)
}
