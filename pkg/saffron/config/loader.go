package config

import (
	"fmt"

	"github.com/cognicore/saffron/pkg/saffron/frog"
	"github.com/cognicore/saffron/pkg/saffron/linking"
	"github.com/cognicore/saffron/pkg/saffron/semafor"
	"github.com/cognicore/saffron/pkg/saffron/sentiment"
)

// Components holds ready-to-use clients for the configured tools.
// Components for unconfigured tools are nil; tasks check before use.
type Components struct {
	Parser       *semafor.Parser
	Converter    semafor.TreeConverter
	Frog         *frog.Client
	Semanticizer *linking.Semanticizer
	Spotlight    *linking.Spotlight
	SentiWords   *sentiment.Lexicon
}

// Components constructs clients from the configuration. The Semafor
// process itself is not started here; the parser handle launches it on
// first use.
func (c *Config) Components() (*Components, error) {
	comp := &Components{}

	if c.Semafor.Home != "" {
		comp.Parser = semafor.New(semafor.Config{
			Home:     c.Semafor.Home,
			ModelDir: c.Semafor.ModelDir,
		})
	}
	if c.CoreNLP.Home != "" {
		comp.Converter = &semafor.CoreNLPConverter{Home: c.CoreNLP.Home}
	}

	comp.Frog = &frog.Client{Addr: c.Frog.Addr}

	if c.Semanticizer.URL != "" {
		comp.Semanticizer = &linking.Semanticizer{URL: c.Semanticizer.URL}
	}
	comp.Spotlight = &linking.Spotlight{
		APIURL:     c.Spotlight.APIURL,
		Language:   c.Spotlight.Language,
		Confidence: c.Spotlight.Confidence,
		Support:    c.Spotlight.Support,
	}

	if c.SentiWords.Path != "" {
		lex, err := sentiment.Load(c.SentiWords.Path)
		if err != nil {
			return nil, fmt.Errorf("load sentiwords: %w", err)
		}
		comp.SentiWords = lex
	}

	return comp, nil
}
