// Copyright (c) Microsoft. All rights reserved.

package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	af "github.com/microsoft/agent-labs/go/agentframework"
	"github.com/microsoft/agent-labs/go/settings"
)

// clearEnv blanks keys for the test; blank values count as absent and the
// originals are restored on cleanup.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

var allKeys = []string{
	settings.KeyProjectEndpoint, settings.KeyModelDeployment, settings.KeyModelDeploymentName,
	settings.KeyPollInterval, settings.KeyRunTimeout, settings.KeyMCPServerURL,
	settings.KeyMCPServerLabel, settings.KeyDataFile, settings.KeyDebug,
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newResolver(t *testing.T, envDir, settingsDir string) *settings.Resolver {
	t.Helper()
	r, err := settings.NewResolver(
		settings.WithEnvFileDirs(envDir),
		settings.WithAppSettingsDirs(settingsDir),
	)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestParseEnvFile(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"PROJECT_ENDPOINT=\"https://x.example\"",
		"   ",
		"no separator here",
		"=orphan",
		"model_deployment = gpt-4o ",
		"QUOTED_SINGLE='single'",
		"  # indented comment",
	}, "\n")

	got, err := settings.ParseEnvFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnvFile: %v", err)
	}
	want := map[string]string{
		"PROJECT_ENDPOINT": "https://x.example",
		"MODEL_DEPLOYMENT": "gpt-4o",
		"QUOTED_SINGLE":    "single",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseEnvFile_ValuesAreLiteral(t *testing.T) {
	t.Setenv("SIG", "expanded")
	input := strings.Join([]string{
		"API_KEY=p@ss$SIG",
		`Q="x${SIG}y"`,
		"NOTE=it's fine",
		`WIN_PATH=C:\tools\`,
		"HASH=abc#def",
		"export EXPORTED=yes",
	}, "\n")

	got, err := settings.ParseEnvFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnvFile: %v", err)
	}
	want := map[string]string{
		"API_KEY":  "p@ss$SIG",
		"Q":        "x${SIG}y",
		"NOTE":     "it's fine",
		"WIN_PATH": `C:\tools\`,
		"HASH":     "abc#def",
		"EXPORTED": "yes",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseEnvFile_SkipsInvalidKeys(t *testing.T) {
	input := "AZURE-REGION=eastus\nMODEL_DEPLOYMENT=gpt-4o\nBROKEN=\"unterminated\n"

	got, err := settings.ParseEnvFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnvFile: %v", err)
	}
	if _, ok := got["AZURE-REGION"]; ok {
		t.Error("invalid key should be skipped")
	}
	if got["MODEL_DEPLOYMENT"] != "gpt-4o" {
		t.Errorf("MODEL_DEPLOYMENT = %q", got["MODEL_DEPLOYMENT"])
	}
	if got["BROKEN"] != `"unterminated` {
		t.Errorf("BROKEN = %q, want the raw value", got["BROKEN"])
	}
}

func TestNewResolver_OddEnvFileLineDoesNotBlockEnvironment(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(settings.KeyProjectEndpoint, "https://x.example")
	t.Setenv(settings.KeyModelDeployment, "gpt-4o")
	dir := t.TempDir()
	writeFile(t, dir, ".env", "AZURE-REGION=eastus\n")

	cfg, err := settings.Load(newResolver(t, dir, dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProjectEndpoint != "https://x.example" || cfg.ModelDeployment != "gpt-4o" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t, allKeys...)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "PROJECT_ENDPOINT=https://x.example\nMODEL_DEPLOYMENT=gpt-4o\n")

	cfg, err := settings.Load(newResolver(t, dir, dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProjectEndpoint != "https://x.example" || cfg.ModelDeployment != "gpt-4o" {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := os.Getenv(settings.KeyProjectEndpoint); got != "https://x.example" {
		t.Errorf("PROJECT_ENDPOINT not published to the environment: %q", got)
	}
	if got := os.Getenv(settings.KeyModelDeployment); got != "gpt-4o" {
		t.Errorf("MODEL_DEPLOYMENT not published to the environment: %q", got)
	}

	if cfg.PollInterval != settings.DefaultPollInterval || cfg.RunTimeout != settings.DefaultRunTimeout {
		t.Errorf("durations = %v, %v", cfg.PollInterval, cfg.RunTimeout)
	}
	if cfg.MCPServerURL != settings.DefaultMCPServerURL || cfg.MCPServerLabel != "mslearn" || cfg.DataFile != "data.txt" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLookup_EnvironmentWins(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(settings.KeyProjectEndpoint, "https://from-env.example")
	dir := t.TempDir()
	writeFile(t, dir, ".env", "PROJECT_ENDPOINT=https://from-file.example\n")

	v, ok := newResolver(t, dir, dir).Lookup(settings.KeyProjectEndpoint)
	if !ok || v != "https://from-env.example" {
		t.Errorf("Lookup = %q, %v", v, ok)
	}
}

func TestLookup_BlankEnvFallsThrough(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(settings.KeyModelDeployment, "   ")
	dir := t.TempDir()
	writeFile(t, dir, ".env", "MODEL_DEPLOYMENT=gpt-4o\n")

	v, ok := newResolver(t, dir, dir).Lookup(settings.KeyModelDeployment)
	if !ok || v != "gpt-4o" {
		t.Errorf("Lookup = %q, %v", v, ok)
	}
}

func TestLoad_FromAppSettings(t *testing.T) {
	clearEnv(t, allKeys...)
	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{
  "PROJECT_ENDPOINT": "https://res.services.ai.azure.com/api/projects/lab",
  "MODEL_DEPLOYMENT_NAME": "gpt-4o-mini",
  "AGENT_POLL_INTERVAL": "250ms"
}`)

	cfg, err := settings.Load(newResolver(t, t.TempDir(), dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelDeployment != "gpt-4o-mini" {
		t.Errorf("ModelDeployment = %q, want alias value", cfg.ModelDeployment)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
}

func TestLoad_EnvFileBeforeAppSettings(t *testing.T) {
	clearEnv(t, allKeys...)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "MODEL_DEPLOYMENT=from-dotenv\n")
	writeFile(t, dir, "appsettings.json", `{"PROJECT_ENDPOINT":"https://x.example","MODEL_DEPLOYMENT":"from-json"}`)

	r := newResolver(t, dir, dir)
	cfg, err := settings.Load(r)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelDeployment != "from-dotenv" {
		t.Errorf("ModelDeployment = %q", cfg.ModelDeployment)
	}
	if files := r.Files(); len(files) != 2 {
		t.Errorf("Files = %v", files)
	}
}

func TestLoad_Missing(t *testing.T) {
	clearEnv(t, allKeys...)
	empty := t.TempDir()

	_, err := settings.Load(newResolver(t, empty, empty))
	if !errors.Is(err, af.ErrMissingSetting) {
		t.Fatalf("err = %v, want ErrMissingSetting", err)
	}
	if !errors.Is(err, af.ErrConfig) {
		t.Error("ErrMissingSetting should wrap ErrConfig")
	}
	if !strings.Contains(err.Error(), "PROJECT_ENDPOINT") {
		t.Errorf("error %q should name PROJECT_ENDPOINT", err)
	}

	t.Setenv(settings.KeyProjectEndpoint, "https://x.example")
	_, err = settings.Load(newResolver(t, empty, empty))
	if !errors.Is(err, af.ErrMissingSetting) || !strings.Contains(err.Error(), "MODEL_DEPLOYMENT") {
		t.Errorf("err = %v, want missing MODEL_DEPLOYMENT", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(settings.KeyProjectEndpoint, "https://x.example")
	t.Setenv(settings.KeyModelDeployment, "gpt-4o")
	t.Setenv(settings.KeyRunTimeout, "forever")
	empty := t.TempDir()

	_, err := settings.Load(newResolver(t, empty, empty))
	if !errors.Is(err, af.ErrInvalidSetting) {
		t.Fatalf("err = %v, want ErrInvalidSetting", err)
	}
}

func TestLoad_Debug(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"yes", true},
		{"false", false},
		{"0", false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			clearEnv(t, allKeys...)
			t.Setenv(settings.KeyProjectEndpoint, "https://x.example")
			t.Setenv(settings.KeyModelDeployment, "gpt-4o")
			t.Setenv(settings.KeyDebug, tc.value)
			empty := t.TempDir()

			cfg, err := settings.Load(newResolver(t, empty, empty))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Debug != tc.want {
				t.Errorf("Debug = %v, want %v", cfg.Debug, tc.want)
			}
		})
	}
}

func TestNewResolver_MalformedAppSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{"PROJECT_ENDPOINT":`)

	_, err := settings.NewResolver(settings.WithEnvFileDirs(dir), settings.WithAppSettingsDirs(dir))
	if !errors.Is(err, af.ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
}
