// saffron runs a single NLP task over a document from a file or stdin and
// prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/cognicore/saffron/pkg/saffron"
	"github.com/cognicore/saffron/pkg/saffron/config"
	"github.com/cognicore/saffron/pkg/saffron/document"
)

var (
	app        = kingpin.New("saffron", "Run single-document NLP tasks against external tools.")
	configPath = app.Flag("config", "YAML configuration file.").Short('c').String()
	output     = app.Flag("output", "Task output mode (task-specific).").String()
	langCode   = app.Flag("language", "Language code, for tasks that take one.").String()
	taskName   = app.Arg("task", "Task name; see the server's / endpoint for the list.").Required().String()
	inputPath  = app.Arg("input", "Input file; stdin when omitted.").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("load configuration")
		}
	}
	comp, err := cfg.Components()
	if err != nil {
		log.Fatal().Err(err).Msg("build components")
	}

	text, err := readInput(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}

	params := saffron.Params{}
	if *output != "" {
		params["output"] = *output
	}
	if *langCode != "" {
		params["language"] = *langCode
	}

	runner := saffron.NewRunner(comp)
	result, err := runner.Run(context.Background(), *taskName, document.Literal(text), params)
	if err != nil {
		log.Fatal().Err(err).Str("task", *taskName).Msg("task failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
