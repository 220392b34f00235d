// Command klvdecode decodes MISB ST 0601 UAS Datalink Local Sets from
// a file, optionally demultiplexing an MPEG-2 Transport Stream first,
// and renders the result as JSON or CSV.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/aminofox/uasklv/pkg/config"
	"github.com/aminofox/uasklv/pkg/logger"
	"github.com/aminofox/uasklv/pkg/render"
	"github.com/aminofox/uasklv/pkg/uasklv"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		input      = flag.String("input", "", "path to the input file (Transport Stream or raw KLV)")
		format     = flag.String("format", "json", "output format: json or csv")
		noTS       = flag.Bool("no-ts", false, "treat input as raw KLV instead of an MPEG-TS container")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("klvdecode 1.0.0")
		return
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log := logger.NewDefaultLogger(logger.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing required -input flag")
		os.Exit(1)
	}

	runID := uuid.NewString()
	log.Info("starting decode run", logger.String("run_id", runID), logger.String("input", *input))

	f, err := os.Open(*input)
	if err != nil {
		log.Fatal("opening input", logger.Err(err))
	}
	defer f.Close()

	opts := []uasklv.Option{uasklv.WithLogger(log)}
	if cfg.KLV.UniversalLabel != "" {
		ul, hexErr := hex.DecodeString(cfg.KLV.UniversalLabel)
		if hexErr != nil {
			log.Fatal("parsing klv.universal_label", logger.Err(hexErr))
		}
		opts = append(opts, uasklv.WithUL(ul))
	}
	decoder := uasklv.New(opts...)

	var result *uasklv.Result
	if cfg.TS.Enabled && !*noTS {
		result, err = decoder.DecodeTransportStream(f, cfg.TS.PID)
	} else {
		data, readErr := os.ReadFile(*input)
		if readErr != nil {
			log.Fatal("reading input", logger.Err(readErr))
		}
		result, err = decoder.Decode(data)
	}
	if err != nil {
		log.Fatal("decoding input", logger.Err(err))
	}

	log.Info("decode run complete", logger.String("run_id", runID), logger.Int("packets", len(result.Packets)))

	switch *format {
	case "csv":
		err = render.CSV(os.Stdout, result)
	default:
		err = render.JSON(os.Stdout, result)
	}
	if err != nil {
		log.Fatal("rendering output", logger.Err(err))
	}
}
