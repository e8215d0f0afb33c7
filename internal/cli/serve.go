package cli

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/internal/server"
	"github.com/matzehuels/avatarkit/pkg/cache"
	"github.com/matzehuels/avatarkit/pkg/session"
)

const sweepInterval = time.Minute

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr, sessions, redisAddr string
		ttl                       time.Duration
		secure, noCache           bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the avatar HTTP API",
		Long: `Serve the avatar HTTP API. Each browser gets a cookie session holding its
avatar; GET /api/render.{png,svg,pdf,json} renders without a session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ss := c.settings.Server
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				addr = ss.Addr
			}
			if !flags.Changed("sessions") {
				sessions = ss.Sessions
			}
			if !flags.Changed("redis") {
				redisAddr = ss.Redis
			}
			if !flags.Changed("session-ttl") {
				ttl = ss.SessionTTL.Duration
			}
			if !flags.Changed("secure-cookies") {
				secure = ss.SecureCookies
			}

			store, closeStore, err := newSessionStore(ctx, sessions, redisAddr)
			if err != nil {
				return err
			}
			defer closeStore()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, store, c.Logger)
			srv.SessionTTL = ttl
			srv.SecureCookies = secure

			printInfo("Serving on %s", styleHighlight.Render("http://"+addr))
			printDetail("sessions: %s, ttl %s", sessions, ttl)
			return srv.ListenAndServe(ctx, addr, sweepInterval)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default localhost:8080)")
	f.StringVar(&sessions, "sessions", "", "session store: memory or redis")
	f.StringVar(&redisAddr, "redis", "", "redis address for the session store")
	f.DurationVar(&ttl, "session-ttl", 0, "idle session lifetime")
	f.BoolVar(&secure, "secure-cookies", false, "mark session cookies Secure")
	f.BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func newSessionStore(ctx context.Context, kind, addr string) (session.Store, func(), error) {
	switch kind {
	case backendRedis:
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := cache.Ping(ctx, client); err != nil {
			client.Close()
			return nil, nil, err
		}
		return session.NewRedisStore(client, appName+":"), func() { client.Close() }, nil
	case backendMemory, "":
		return session.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, errInvalidBackend("sessions", kind)
}
