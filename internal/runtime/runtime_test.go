package runtime

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinsut/comad/pkg/config"
	"github.com/steinsut/comad/pkg/engine"
	"github.com/steinsut/comad/pkg/logging"
	"github.com/steinsut/comad/pkg/manifest"
)

const testManifest = `
name: demo
commands:
  add:
    aliases: [plus]
    args:
      - name: a
        type: int
      - name: b
        type: int
    run: "args.a + args.b"
  say:
    flags: [shout]
    options:
      text:
        type: string
        short: t
        required: true
    echo: "{flags.shout ? upper(options.text) : options.text}"
`

func newRuntime(t *testing.T, mutate func(*config.Settings)) (*Runtime, *bytes.Buffer, *logging.Recorder) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o600))

	settings := config.DefaultSettings()
	settings.Manifest = path
	settings.NoColor = true
	if mutate != nil {
		mutate(settings)
	}

	var out bytes.Buffer
	rec := logging.NewRecorder()
	rt, err := NewRuntime(&RuntimeConfig{Settings: settings, Stdout: &out, Logger: rec})
	require.NoError(t, err)
	return rt, &out, rec
}

func TestRun(t *testing.T) {
	rt, out, _ := newRuntime(t, nil)

	assert.Equal(t, 5, rt.Run([]string{"plus", "2", "3"}))
	assert.Equal(t, 0, rt.Run([]string{"say", "-t", "hi", "shout"}))
	assert.Equal(t, "HI\n", out.String())

	status, err := rt.RunLine(`say --text "two words"`)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "two words\n")

	assert.Equal(t, engine.StatusMissingRequiredOptions, rt.Run([]string{"say"}))
	assert.Equal(t, engine.StatusDispatchFailure, rt.Run(nil))
}

func TestParsePrintsReport(t *testing.T) {
	rt, out, _ := newRuntime(t, nil)

	status, err := rt.Parse([]string{"add", "1", "x"}, "json")
	require.NoError(t, err)
	assert.Equal(t, engine.StatusInvalidValueParse, status)

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "add", report["command"])
	assert.Contains(t, report["error"], "cannot convert token")

	out.Reset()
	_, err = rt.Parse([]string{"say", "-t", "x"}, "xml")
	assert.Error(t, err)
}

func TestFlagPrefixSetting(t *testing.T) {
	rt, out, _ := newRuntime(t, func(s *config.Settings) {
		s.Parser.FlagPrefix = "+"
	})

	assert.Equal(t, 0, rt.Run([]string{"say", "-t", "a", "shout"}))
	assert.Equal(t, 0, rt.Run([]string{"say", "-t", "b", "+shout"}))
	assert.Equal(t, "a\nB\n", out.String())
}

func TestVerboseTrace(t *testing.T) {
	rt, _, rec := newRuntime(t, func(s *config.Settings) {
		s.Parser.Verbose = true
	})
	rt.Run([]string{"plus", "1", "1"})
	assert.NotEmpty(t, rec.Messages(logging.LevelDebug))

	rt, _, rec = newRuntime(t, nil)
	rt.Run([]string{"plus", "1", "1"})
	assert.Empty(t, rec.Messages(logging.LevelDebug))
}

func TestPrintTree(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	rt, out, _ := newRuntime(t, nil)
	require.NoError(t, rt.PrintTree())

	assert.Contains(t, out.String(), "demo")
	assert.Contains(t, out.String(), "add (plus) <a:int> <b:int>")
	assert.Contains(t, out.String(), "say -t/--text <string>! [shout]")
	assert.Equal(t, "demo", rt.Manifest().Name)
	assert.Equal(t, []string{"add", "say"}, rt.Root().Children())
}

func TestNewRuntimeErrors(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Manifest = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewRuntime(&RuntimeConfig{Settings: settings, Logger: logging.Nop()})
	assert.Error(t, err)

	chdirForTest(t, t.TempDir())
	_, err = NewRuntime(&RuntimeConfig{Logger: logging.Nop()})
	assert.ErrorIs(t, err, manifest.ErrNoManifest)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("commands:\n  x:\n    run: \"1 +\"\n"), 0o600))
	settings.Manifest = bad
	_, err = NewRuntime(&RuntimeConfig{Settings: settings, Logger: logging.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile run expression")
}

func TestComplete(t *testing.T) {
	rt, _, _ := newRuntime(t, nil)

	assert.Equal(t, []string{"add", "plus", "say"}, rt.Complete(nil, ""))
	assert.Equal(t, []string{"--text", "shout"}, rt.Complete([]string{"say"}, ""))
}

// chdirForTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
