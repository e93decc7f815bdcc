package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tareeqi/tareeqweb/internal/config"
	"github.com/tareeqi/tareeqweb/internal/form"
	"github.com/tareeqi/tareeqweb/internal/relay"
	"github.com/tareeqi/tareeqweb/internal/version"
)

// execute runs the root command with fresh viper state and every flag back
// at its default, since the command tree is package global.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

type relayRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func newRelayServer(t *testing.T, status int, body string) (*httptest.Server, *relayRecorder) {
	t.Helper()
	rec := &relayRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.bodies = append(rec.bodies, string(raw))
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func (r *relayRecorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.bodies...)
}

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultFileName)

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "/TareeqWeb", got.Site.BasePath)
	assert.Equal(t, relay.DefaultEndpoint, got.Relay.Endpoint)
	assert.Equal(t, 3000, got.Server.Port)
	assert.Equal(t, "out", got.Build.OutDir)
	assert.True(t, got.Development.HotReload)

	_, _, err = execute(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--force", dir)
	assert.NoError(t, err)
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("public", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("public", "favicon.ico"), []byte("ico"), 0o644))

	out, _, err := execute(t, "build", "--out", "site")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated")
	assert.Contains(t, out, "Exported site")

	for _, name := range []string{"index.html", "contact/index.html", "404.html", ".nojekyll", "favicon.ico"} {
		assert.FileExists(t, filepath.Join("site", name))
	}

	home, err := os.ReadFile(filepath.Join("site", "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(home), `"/TareeqWeb/assets/site.css"`)
}

func TestBuildSkipExport(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "build", "--skip-export")
	require.NoError(t, err)
	assert.NotContains(t, out, "Exported")

	assert.NoFileExists(t, filepath.Join("out", ".nojekyll"))
	home, err := os.ReadFile(filepath.Join("out", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), `"/TareeqWeb/assets/site.css"`)
}

func TestBuildConfigPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(config.DefaultFileName, []byte("build:\n  out_dir: fromfile\n"), 0o644))

	_, _, err := execute(t, "build", "--skip-export")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("fromfile", "index.html"))

	t.Setenv("TAREEQ_BUILD_OUT_DIR", "fromenv")
	_, _, err = execute(t, "build", "--skip-export")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("fromenv", "index.html"))

	_, _, err = execute(t, "build", "--skip-export", "--out", "fromflag")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("fromflag", "index.html"))
}

func TestExportCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "build", "--skip-export")
	require.NoError(t, err)

	out, _, err := execute(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "copy-public, nojekyll, image-case, rewrite-paths")
	assert.FileExists(t, filepath.Join("out", ".nojekyll"))
}

func TestInvalidLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "build", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
	assert.NoDirExists(t, "out")
}

func TestSubmitContact(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, rec := newRelayServer(t, http.StatusOK, `{"ok":true}`)

	out, _, err := execute(t, "submit",
		"--endpoint", srv.URL,
		"--name", "Ali",
		"--email", "ali@example.com",
		"--subject", "Hello",
		"--message", "Hello there, team!",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Message sent successfully!")

	calls := rec.calls()
	require.Len(t, calls, 1)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0]), &body))
	assert.Equal(t, "contact", body["kind"])
	assert.Equal(t, "ali@example.com", body["email"])
}

func TestSubmitInvalidMakesNoRequest(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, rec := newRelayServer(t, http.StatusOK, `{}`)

	_, stderr, err := execute(t, "submit", "--endpoint", srv.URL, "--kind", "beta", "--name", "Sara")
	require.ErrorIs(t, err, errInvalidSubmission)
	assert.Contains(t, stderr, "email: Email is required\nphone: Phone number is required\n")
	assert.NotContains(t, stderr, "subject:")
	assert.Empty(t, rec.calls())
}

func TestSubmitRelayFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, rec := newRelayServer(t, http.StatusInternalServerError, `{"error":"mailbox full"}`)

	_, _, err := execute(t, "submit",
		"--endpoint", srv.URL,
		"--kind", "beta",
		"--name", "Sara",
		"--email", "sara@example.org",
		"--phone", "+966 5512345678",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to submit registration")
	assert.Contains(t, err.Error(), "mailbox full")
	assert.Len(t, rec.calls(), 1)
}

func TestSubmitRejectsUnknownKind(t *testing.T) {
	_, _, err := execute(t, "submit", "--kind", "newsletter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown form kind")
}

func TestVersionCommand(t *testing.T) {
	info := version.GetBuildInfo()

	out, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, info.Short()+"\n", out)

	out, _, err = execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, info.Version, got["version"])
	assert.Equal(t, info.Platform, got["platform"])

	out, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, info.String(), out)

	_, _, err = execute(t, "version", "--format", "xml")
	assert.Error(t, err)
}

func TestKindValue(t *testing.T) {
	var kind form.Kind
	v := newKindValue(form.KindContact, &kind)
	assert.Equal(t, "contact", v.String())
	assert.Equal(t, "kind", v.Type())

	require.NoError(t, v.Set(" Beta "))
	assert.Equal(t, "beta", string(kind))
	assert.Error(t, v.Set("other"))
	assert.Equal(t, "beta", string(kind))
}

func TestBindFlagsUnknownFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := bindFlags(fs, map[string]string{"missing": "x.y"})
	assert.Error(t, err)
}
