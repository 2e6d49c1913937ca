// saffron-server exposes the task runner over HTTP: GET / lists tasks,
// POST /run/:task runs one on literal text or a document-store reference.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/cognicore/saffron/internal/rest"
	"github.com/cognicore/saffron/pkg/saffron"
	"github.com/cognicore/saffron/pkg/saffron/config"
)

var (
	app        = kingpin.New("saffron-server", "HTTP server for single-document NLP tasks.")
	addr       = app.Flag("addr", "Address to listen on.").Default(":5001").String()
	configPath = app.Flag("config", "YAML configuration file.").Short('c').String()
	storeURL   = app.Flag("store-url", "Document store base URL for reference inputs.").String()
	debug      = app.Flag("debug", "Verbose request logging.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

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

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &rest.Server{
		Runner:   saffron.NewRunner(comp),
		StoreURL: *storeURL,
		Log:      log,
	}

	log.Info().Str("addr", *addr).Msg("saffron server listening")
	if err := server.Router().Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
