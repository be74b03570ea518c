// @title			Aspire Front Desk API
// @version		1.0
// @description	Contact intake for the Aspire Executive Solutions landing site.
// @BasePath		/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/aspire-executive/frontdesk/internal/config"
	"github.com/aspire-executive/frontdesk/internal/contactform"
	"github.com/aspire-executive/frontdesk/internal/database"
	"github.com/aspire-executive/frontdesk/internal/handler"
	"github.com/aspire-executive/frontdesk/internal/jobs"
	"github.com/aspire-executive/frontdesk/internal/logger"
	"github.com/aspire-executive/frontdesk/internal/middleware"
	"github.com/aspire-executive/frontdesk/internal/notify"
	"github.com/aspire-executive/frontdesk/internal/repository"
	"github.com/aspire-executive/frontdesk/internal/service"
	"github.com/aspire-executive/frontdesk/internal/view"
	"github.com/aspire-executive/frontdesk/internal/widget"
)

func main() {
	app := &cli.App{
		Name:  "aspire",
		Usage: "Aspire Executive Solutions landing site and contact intake",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "json",
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetupWithFormat(os.Stdout, c.String("log-format"), logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					databaseFlag(),
					redisFlag(),
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "admin-token",
						Usage:   "Bearer token for the submission browsing API (disabled when empty)",
						EnvVars: []string{"ADMIN_TOKEN"},
					},
					&cli.StringFlag{
						Name:    "public-backend-url",
						Usage:   "Base URL the contact form posts to (empty for same origin)",
						EnvVars: []string{"PUBLIC_BACKEND_URL"},
					},
					&cli.StringSliceFlag{
						Name:    "allowed-origins",
						Usage:   "CORS origins allowed to post the contact form",
						Value:   cli.NewStringSlice("*"),
						EnvVars: []string{"ALLOWED_ORIGINS"},
					},
					&cli.IntFlag{
						Name:    "contact-rate-limit",
						Value:   10,
						Usage:   "Contact submissions allowed per client IP per minute",
						EnvVars: []string{"CONTACT_RATE_LIMIT"},
					},
					&cli.BoolFlag{
						Name:    "production",
						Usage:   "Enable HTTPS redirects",
						EnvVars: []string{"PRODUCTION"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "worker",
				Usage:  "Deliver contact notification e-mails",
				Flags:  []cli.Flag{databaseFlag(), redisFlag()},
				Action: runWorker,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations",
				Flags:  []cli.Flag{databaseFlag()},
				Action: runMigrate,
			},
			{
				Name:  "submit",
				Usage: "Send a contact inquiry to a running backend",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "backend-url",
						Usage: "Backend base URL (defaults to $BACKEND_URL)",
					},
					&cli.StringFlag{Name: "name", Usage: "Your name"},
					&cli.StringFlag{Name: "email", Usage: "Your e-mail address"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number (optional)"},
					&cli.StringFlag{Name: "message", Usage: "Message"},
					&cli.DurationFlag{Name: "timeout", Value: 15 * time.Second, Usage: "Request timeout"},
					&cli.BoolFlag{
						Name:  "log-outcome",
						Usage: "Report the outcome through the structured logger instead of the terminal",
					},
				},
				Action: runSubmit,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func databaseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "database-url",
		Aliases:  []string{"d"},
		Value:    config.DefaultDatabaseURL,
		Usage:    "PostgreSQL database URL",
		EnvVars:  []string{"DATABASE_URL"},
		Required: true,
	}
}

func redisFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "redis-addr",
		Value:   config.DefaultRedisAddr,
		Usage:   "Redis address for the notification queue",
		EnvVars: []string{"REDIS_ADDR"},
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if _, err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisAddr := c.String("redis-addr")
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("redis close", "error", err)
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Warn("redis ping failed, notifications will be retried by clients", "error", err)
	}

	queue := jobs.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer queue.Close()

	contactRepo := repository.NewContactRepository(db.Pool())
	contactService := service.NewContactService(contactRepo, queue)

	site := view.DefaultSite()
	site.BackendURL = c.String("public-backend-url")
	views, err := view.NewEngine(site)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	h := handler.New(handler.Deps{
		Contacts:   contactService,
		Lister:     contactRepo,
		Views:      views,
		ChatWidget: widget.NewChatLoader(),
		Database:   db,
		Ready: map[string]handler.Pinger{
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		},
		AdminToken: c.String("admin-token"),
		Middleware: middleware.Config{
			Logger:         slog.Default(),
			Production:     c.Bool("production"),
			AllowedOrigins: c.StringSlice("allowed-origins"),
		},
		ContactRateLimit: c.Int("contact-rate-limit"),
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           h.Routes(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func runWorker(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	mailerCfg, err := config.LoadMailer()
	if err != nil {
		return err
	}
	if !mailerCfg.Complete() {
		slog.Warn("mailer not configured, notifications will be marked notify_failed")
	}

	job := jobs.NewContactNotifyJob(
		notify.NewBrevoMailer(mailerCfg, nil),
		repository.NewContactRepository(db.Pool()),
		slog.Default(),
	)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:     asynq.RedisClientOpt{Addr: c.String("redis-addr")},
		Logger:        slog.Default(),
		ContactNotify: job,
	})
	if err != nil {
		return fmt.Errorf("failed to init worker: %w", err)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker run: %w", err)
	}
	return nil
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, err := database.RunMigrations(ctx, db.Pool())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "database at version %d\n", version)
	return nil
}

func runSubmit(c *cli.Context) error {
	backendURL := c.String("backend-url")
	if backendURL == "" {
		clientCfg, err := config.LoadClient()
		if err != nil {
			return err
		}
		backendURL = clientCfg.BackendURL
	}

	client, err := contactform.NewClient(contactform.Config{
		BackendBaseURL: backendURL,
		Timeout:        c.Duration("timeout"),
	}, nil)
	if err != nil {
		return err
	}

	var notifier contactform.Notifier = &contactform.WriterNotifier{W: c.App.Writer}
	if c.Bool("log-outcome") {
		notifier = contactform.LogNotifier{Logger: slog.Default()}
	}

	form := contactform.NewForm(client, notifier, slog.Default())
	fields := []contactform.Field{
		contactform.FieldName,
		contactform.FieldEmail,
		contactform.FieldPhone,
		contactform.FieldMessage,
	}
	for _, field := range fields {
		if err := form.UpdateField(field, c.String(string(field))); err != nil {
			return err
		}
	}

	outcome, err := form.Submit(c.Context)
	if err != nil {
		return err
	}
	if outcome != contactform.OutcomeSuccess {
		return cli.Exit(fmt.Sprintf("contact submission %s", outcome), 1)
	}
	return nil
}
