package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jessevdk/go-flags"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/octabyte/bm-gateway/api"
	"github.com/octabyte/bm-gateway/config"
	redisdb "github.com/octabyte/bm-gateway/db/redis"
	"github.com/octabyte/bm-gateway/events"
	"github.com/octabyte/bm-gateway/gateway"
	"github.com/octabyte/bm-gateway/queue"
	"github.com/octabyte/bm-gateway/session"
	"github.com/octabyte/bm-gateway/utils/logger"
)

type options struct {
	Verbose bool `short:"v" long:"verbose" description:"Log at debug level"`
}

type app struct {
	cfg  *config.Config
	opts options
	out  io.Writer

	client  *api.Client
	closers []func() error
}

func newApp(cfg *config.Config, out io.Writer) *app {
	return &app{cfg: cfg, out: out}
}

const loginHelp = `Sign in with email and password.

Without BM_REDIS_ADDR the session lives in this process only. With it, the
credentials and the refresh cookie are kept in redis for BM_SESSION_TTL, so later
runs refresh the access token instead of asking for a new login.`

func (a *app) register(parser *flags.Parser) {
	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"login", "Sign in with email and password", loginHelp, &loginCommand{app: a}},
		{"signup", "Create a member account", "", &signupCommand{app: a}},
		{"whoami", "Show the signed-in member", "", &whoamiCommand{app: a}},
		{"projects", "List investment projects", "", &projectsCommand{app: a}},
		{"notices", "List notices", "", &noticesCommand{app: a}},
		{"funds", "Show the fund ledger", "", &fundsCommand{app: a}},
		{"pay", "Submit a membership payment", "", &payCommand{app: a}},
		{"payments", "List payments", "", &paymentsCommand{app: a}},
		{"logout", "Sign out", "", &logoutCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			panic(err)
		}
	}
}

// api builds the client on first use, so --help never dials redis or amqp.
func (a *app) api(ctx context.Context) (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	if a.opts.Verbose {
		a.cfg.Logger.Level = "debug"
		logger.Init(&a.cfg.Logger)
	}

	var opts []gateway.Option

	if a.cfg.Redis != nil {
		client, err := redisdb.NewRedisClient(ctx, *a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		opts = append(opts, gateway.WithStore(session.NewRedisStore(client, a.cfg.SessionKey, a.cfg.SessionTTL)))

		jar, err := session.NewRedisCookieJar(ctx, client, a.cfg.SessionKey+session.CookieKeySuffix, a.cfg.Gateway.BaseURL, a.cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gateway.WithCookieJar(jar))
	}

	if a.cfg.Queue != nil {
		conn, err := queue.NewConnection(*a.cfg.Queue)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		publisher := queue.NewPublisher(conn.Ch, queue.PublishConfig{
			Exchange:     a.cfg.Queue.Exchange.Name,
			DeliveryMode: amqp.Persistent,
		})
		notifier := events.NewNotifier(publisher, a.cfg.Gateway.ServiceName, logger.Named("events"))
		opts = append(opts, notifier.GatewayOptions()...)
	}

	opts = append(opts, gateway.WithLogger(logger.Named("gateway")))
	gw, err := gateway.New(a.cfg.Gateway, opts...)
	if err != nil {
		return nil, err
	}
	a.client = api.New(gw)
	return a.client, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.LogWarnf("close: %v", err)
		}
	}
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) printTo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
