package main

import (
	"flag"
	"os"

	"github.com/drakos74/free-net/infra/config"
	"github.com/drakos74/free-net/internal/dnn"
	netmath "github.com/drakos74/free-net/internal/math"
	"github.com/drakos74/free-net/internal/metrics"
	"github.com/drakos74/free-net/internal/monitor"
	"github.com/drakos74/free-net/internal/settings"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Training is the configuration of a training run.
type Training struct {
	Network  dnn.Config      `json:"network"`
	Settings settings.Config `json:"settings"`
	Data     DataConfig      `json:"data"`
}

func defaultTraining() Training {
	return Training{
		Settings: settings.DefaultConfig(),
		Data: DataConfig{
			Train:      2000,
			Test:       1000,
			Separation: 1.5,
		},
	}
}

func main() {

	path := flag.String("config", "", "path to the training config, defaults to infra/config/train.json")
	port := flag.Int("metrics", 0, "port to serve the prometheus metrics on, 0 disables them")
	epochs := flag.Int("epochs", 1000, "maximum number of training epochs")
	lossName := flag.String("loss", dnn.CrossEntropy.String(), "error function of the output layer")
	plot := flag.Bool("plot", true, "render the evaluation curves on the console")
	flag.Parse()

	training := defaultTraining()
	if *path == "" {
		config.MustLoad("train", &training)
	} else if err := config.Load(*path, &training); err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("could not load config")
	}

	loss, err := dnn.ParseLoss(*lossName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid loss")
	}

	net, err := dnn.FromConfig(training.Network)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid network")
	}
	if len(net.Layers()) == 0 || net.OutputSize() != 1 {
		log.Fatal().Int("output", net.OutputSize()).Msg("classification needs a single output node")
	}

	opts := make([]settings.Option, 0)
	if *plot {
		opts = append(opts, settings.WithMonitor(monitor.NewConsole(os.Stdout)))
	}
	s, err := settings.New(training.Settings, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	classification := settings.NewClassification(s)

	if *port > 0 {
		metrics.Serve(*port)
	}

	rnd := netmath.NewRandom(training.Settings.Seed)
	train := generate(rnd, training.Data.Train, net.InputSize(), training.Data.Separation)
	test := generate(rnd, training.Data.Test, net.InputSize(), training.Data.Separation)

	log.Info().
		Str("id", s.ID()).
		Str("loss", loss.String()).
		Int("weights", net.NumWeights(0)).
		Int("train", len(train)).
		Int("test", len(test)).
		Uint64("seed", rnd.Seed()).
		Msg("start training")

	trainer := NewTrainer(net, loss, classification, rnd, *epochs)
	n, err := trainer.Train(train, test)
	if err != nil {
		log.Fatal().Err(err).Int("epoch", n).Msg("training failed")
	}

	trend, _ := s.ErrorTrend()
	log.Info().
		Int("epochs", n).
		Float64("min-error", s.MinError()).
		Float64("cut", classification.CutValue()).
		Floats64("significances", classification.Significances()).
		Float64("trend", trend).
		Interface("counters", s.Counters()).
		Msg("training done")
}
