package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
semafor:
  home: /opt/semafor
corenlp:
  home: /opt/corenlp
frog:
  addr: frogbox:9000
semanticizer:
  url: http://localhost:5002
spotlight:
  language: nl
  confidence: 0.4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saffron.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SEMAFOR_HOME", "MALT_MODEL_DIR", "CORENLP_HOME", "SAFFRON_FROG_PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Semafor.Home != "/opt/semafor" {
		t.Errorf("unexpected semafor home %q", cfg.Semafor.Home)
	}
	if cfg.Semafor.ModelDir != "/opt/semafor" {
		t.Errorf("model dir should default to home, got %q", cfg.Semafor.ModelDir)
	}
	if cfg.Frog.Addr != "frogbox:9000" {
		t.Errorf("unexpected frog addr %q", cfg.Frog.Addr)
	}
	if cfg.Spotlight.Language != "nl" || cfg.Spotlight.Confidence != 0.4 {
		t.Errorf("unexpected spotlight config %+v", cfg.Spotlight)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEMAFOR_HOME", "/env/semafor")
	t.Setenv("MALT_MODEL_DIR", "/env/malt")
	t.Setenv("SAFFRON_FROG_PORT", "9999")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Semafor.Home != "/env/semafor" || cfg.Semafor.ModelDir != "/env/malt" {
		t.Errorf("environment must win: %+v", cfg.Semafor)
	}
	if cfg.Frog.Addr != "localhost:9999" {
		t.Errorf("unexpected frog addr %q", cfg.Frog.Addr)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	if cfg.Frog.Addr != "localhost:9887" {
		t.Errorf("unexpected frog addr %q", cfg.Frog.Addr)
	}
	if cfg.Spotlight.Language != "en" || cfg.Spotlight.Confidence != 0.5 {
		t.Errorf("unexpected spotlight defaults %+v", cfg.Spotlight)
	}
}

func TestComponents(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	comp, err := cfg.Components()
	if err != nil {
		t.Fatal(err)
	}
	if comp.Parser == nil {
		t.Error("expected a semafor parser handle")
	}
	if comp.Converter == nil {
		t.Error("expected a corenlp converter")
	}
	if comp.Semanticizer == nil {
		t.Error("expected a semanticizer client")
	}
	if comp.SentiWords != nil {
		t.Error("sentiwords lexicon should be nil when unconfigured")
	}
}
