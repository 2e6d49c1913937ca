// Package config loads the YAML configuration for the external tools the
// tasks wrap. Environment variables win over file settings for the paths
// the tools themselves document (SEMAFOR_HOME, MALT_MODEL_DIR,
// CORENLP_HOME, SAFFRON_FROG_PORT).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for every wrapped tool
type Config struct {
	Semafor      SemaforConfig      `yaml:"semafor"`
	CoreNLP      CoreNLPConfig      `yaml:"corenlp"`
	Frog         FrogConfig         `yaml:"frog"`
	Semanticizer SemanticizerConfig `yaml:"semanticizer"`
	Spotlight    SpotlightConfig    `yaml:"spotlight"`
	SentiWords   SentiWordsConfig   `yaml:"sentiwords"`
}

// SemaforConfig locates the Semafor installation and Malt models
type SemaforConfig struct {
	Home     string `yaml:"home"`
	ModelDir string `yaml:"model_dir"`
}

// CoreNLPConfig locates the CoreNLP installation
type CoreNLPConfig struct {
	Home string `yaml:"home"`
}

// FrogConfig points at a running Frog server
type FrogConfig struct {
	Addr string `yaml:"addr"`
}

// SemanticizerConfig points at a running semanticizest instance
type SemanticizerConfig struct {
	URL string `yaml:"url"`
}

// SpotlightConfig selects a DBpedia Spotlight endpoint
type SpotlightConfig struct {
	APIURL     string  `yaml:"api_url"`
	Language   string  `yaml:"language"`
	Confidence float64 `yaml:"confidence"`
	Support    int     `yaml:"support"`
}

// SentiWordsConfig locates the SentiWords lexicon file
type SentiWordsConfig struct {
	Path string `yaml:"path"`
}

// Load reads a YAML config file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Default returns a config built from environment variables alone
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SEMAFOR_HOME"); v != "" {
		c.Semafor.Home = v
	}
	if v := os.Getenv("MALT_MODEL_DIR"); v != "" {
		c.Semafor.ModelDir = v
	}
	if c.Semafor.ModelDir == "" {
		c.Semafor.ModelDir = c.Semafor.Home
	}
	if v := os.Getenv("CORENLP_HOME"); v != "" {
		c.CoreNLP.Home = v
	}
	if v := os.Getenv("SAFFRON_FROG_PORT"); v != "" {
		c.Frog.Addr = "localhost:" + v
	}
	if c.Frog.Addr == "" {
		c.Frog.Addr = "localhost:9887"
	}
	if c.Spotlight.Language == "" {
		c.Spotlight.Language = "en"
	}
	if c.Spotlight.Confidence == 0 {
		c.Spotlight.Confidence = 0.5
	}
}
