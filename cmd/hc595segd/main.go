// cmd/hc595segd/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flavioheleno/hc595seg"
	"github.com/flavioheleno/hc595seg/channel"
	"github.com/flavioheleno/hc595seg/gpioline"
	"github.com/flavioheleno/hc595seg/internal/config"
	"github.com/flavioheleno/hc595seg/internal/transport"
	"github.com/rs/zerolog"
	"periph.io/x/host/v3"
)

var cfgPath = flag.String("config", "", "YAML configuration file (empty for defaults)")

func main() {
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	boot := newLogger(config.LogConfig{Level: config.DefaultLogLevel, Format: config.DefaultFormat})

	cfg := &config.Config{}
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			boot.Fatal().Err(err).Msg("config load failed")
		}
	}
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		boot.Fatal().Err(err).Msg("config validation failed")
	}

	log := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Display pipeline
	// --------------------

	svc, err := lineService(cfg.GPIO)
	if err != nil {
		// The display stays inert; the protocol is still served.
		log.Error().Err(err).Str("backend", cfg.GPIO.Backend).Msg("gpio backend init failed")
	}

	dev := hc595seg.New(svc, &hc595seg.Opts{
		Data:   cfg.GPIO.Data,
		Clock:  cfg.GPIO.Clock,
		Latch:  cfg.GPIO.Latch,
		Delay:  time.Duration(cfg.GPIO.DelayNs) * time.Nanosecond,
		Logger: &log,
	})
	defer func() {
		if err := dev.Halt(); err != nil {
			log.Warn().Err(err).Msg("releasing gpio lines failed")
		}
	}()
	log.Info().Stringer("dev", dev).Bool("healthy", dev.Healthy()).Msg("shift register ready")

	ctrl := hc595seg.NewController(dev, &hc595seg.ControllerOpts{
		Step:   time.Duration(cfg.Channel.StepMs) * time.Millisecond,
		Logger: &log,
	})
	ch := channel.New(cfg.Channel.Capacity, func(p []byte) {
		ctrl.HandleWriteContext(ctx, p)
	})

	// --------------------
	// Transport
	// --------------------

	port, err := transport.Open(cfg.Transport.Serial.Port, cfg.Transport.Serial.Baud)
	if err != nil {
		log.Error().Err(err).Msg("transport open failed")
		return
	}
	go func() {
		<-ctx.Done()
		_ = port.Close()
	}()

	srv := transport.NewServer(ch, log)
	err = srv.Serve(ctx, port)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		log.Info().Msg("shutting down")
	default:
		log.Error().Err(err).Msg("transport stopped")
	}
}

// lineService builds the configured GPIO backend.
func lineService(g config.GPIOConfig) (gpioline.Service, error) {
	switch g.Backend {
	case config.BackendCdev:
		return &gpioline.Cdev{Chip: g.Chip, Consumer: g.Consumer}, nil
	case config.BackendRpio:
		return &gpioline.Rpio{}, nil
	default:
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		return &gpioline.Periph{}, nil
	}
}

func newLogger(c config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
