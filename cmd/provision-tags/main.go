// provision-tags writes preset comfort-index values to reference tags, one
// tag per preset, and records each provisioned tag in the SQLite registry.
// Run it once before commissioning to prepare one tag below the heating
// threshold and one above the cooling threshold for operator testing.
package main

import (
	"encoding/hex"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/db"
	"github.com/skaurud/comfort-controller/internal/config"
	"github.com/skaurud/comfort-controller/internal/logging"
	"github.com/skaurud/comfort-controller/internal/tag"
)

func main() {
	var (
		configFile = flag.String("config-file", "config.json", "Path to controller config file")
		registry   = flag.String("registry", "data/tags.db", "Path to provisioned-tag registry")
		values     = flag.String("values", "-2.0,2.0", "Comma-separated comfort-index presets, one tag each")
		wait       = flag.Duration("wait", 10*time.Second, "Wait window per tag")
		logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	logging.Init(config.ParseLogLevel(*logLevel), "")

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config file")
	}

	presets, err := parsePresets(*values)
	if err != nil {
		log.Fatal().Err(err).Str("values", *values).Msg("Invalid presets")
	}

	conn, err := db.Open(*registry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open tag registry")
	}
	defer conn.Close()

	reader, err := openTagReader(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tag reader")
	}

	p := &tag.Provisioner{
		Reader:  reader,
		Wait:    *wait,
		Presets: presets,
		Settle:  time.Second,
		OnProvisioned: func(uid []byte, value float64) error {
			return db.RecordProvisionedTag(conn, hex.EncodeToString(uid), value, time.Now())
		},
	}

	if err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("Provisioning aborted")
	}
	log.Info().Int("tags", len(presets)).Msg("Provisioning complete")
}

func parsePresets(s string) ([]float64, error) {
	var presets []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		presets = append(presets, v)
	}
	return presets, nil
}
