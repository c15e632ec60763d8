// Command membercli talks to the membership backend from a terminal. The
// session lives in redis when BM_REDIS_ADDR is set, so consecutive runs stay
// signed in.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/octabyte/bm-gateway/config"
	"github.com/octabyte/bm-gateway/otel"
	"github.com/octabyte/bm-gateway/utils/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	logger.Init(&cfg.Logger)
	defer logger.Sync()

	ctx := context.Background()
	stopOtel, err := otel.InitOpenTelemetry(ctx, cfg.Otel)
	if err != nil {
		return err
	}
	defer stopOtel()

	a := newApp(cfg, os.Stdout)
	defer a.close()

	parser := flags.NewParser(&a.opts, flags.Default)
	a.register(parser)
	_, err = parser.ParseArgs(args)
	return err
}
