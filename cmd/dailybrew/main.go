package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/terraincognita07/dailybrew/internal/api"
	"github.com/terraincognita07/dailybrew/internal/cli"
	"github.com/terraincognita07/dailybrew/internal/config"
	"github.com/terraincognita07/dailybrew/internal/db"
	"github.com/terraincognita07/dailybrew/internal/events"
	"github.com/terraincognita07/dailybrew/internal/i18n"
	"github.com/terraincognita07/dailybrew/internal/logger"
	"github.com/terraincognita07/dailybrew/internal/notify"
	"github.com/terraincognita07/dailybrew/internal/services"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dailybrew: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	time.Local = cfg.Location

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if len(args) > 0 {
		switch args[0] {
		case "set-password":
			return runSetPassword(cfg, log, args[1:], os.Stdout)
		case "serve":
		default:
			return fmt.Errorf("unknown command %q (expected serve or set-password)", args[0])
		}
	}
	return serve(cfg, log)
}

func runSetPassword(cfg *config.Config, log *zap.Logger, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("set-password", flag.ContinueOnError)
	flags.SetOutput(stdout)
	email := flags.String("email", db.DefaultUserEmail, "email of the user to update")
	generate := flags.Bool("generate", false, "generate a random password and print it")
	if err := flags.Parse(args); err != nil {
		return err
	}

	return cli.RunSetPasswordCommand(context.Background(), cli.SetPasswordOptions{
		DBPath:   cfg.DBPath,
		Email:    *email,
		Generate: *generate,
		Stdin:    os.Stdin,
		Stdout:   stdout,
		Log:      log,
	})
}

func serve(cfg *config.Config, log *zap.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	bus := events.NewBus()
	if err := db.RegisterChangeNotifier(database, bus); err != nil {
		return fmt.Errorf("register change notifier: %w", err)
	}

	if err := seedDatabase(database, cfg, log); err != nil {
		return err
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	deps := buildServices(database, bus, cfg.Location)
	handler, err := api.NewHandler(deps, api.Options{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		I18n:         i18nManager,
		Log:          log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	notifier := services.NewLimitNotifier(deps.Users, deps.Status, cfg.Location, log.Named("notifier"), alertSenders(cfg, log)...)
	if err := notifier.Start(lifecycleCtx, cfg.NotifierSchedule); err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("dailybrew listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "DailyBrew",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New(compress.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/stream"
		},
	}))
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	return app
}

func buildServices(database *gorm.DB, bus *events.Bus, location *time.Location) api.Services {
	repositories := db.NewRepositories(database)

	aggregation := services.NewAggregationService(repositories.Intakes, location)
	limits := services.NewLimitService(repositories.Limits)
	intakes := services.NewIntakeService(repositories.Intakes, repositories.Drinks)
	history := services.NewHistoryService(aggregation, repositories.Drinks)
	status := services.NewStatusService(aggregation, limits)

	return api.Services{
		Users:   services.NewUserService(repositories.Users),
		Drinks:  services.NewDrinkService(repositories.Drinks, db.IsForeignKeyViolation),
		Intakes: intakes,
		Limits:  limits,
		Status:  status,
		History: history,
		Export:  services.NewExportService(repositories.Intakes, repositories.Drinks),
		Live:    services.NewLiveService(bus, aggregation, limits, history, intakes),
	}
}

func seedDatabase(database *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	options := db.SeedOptions{}
	if cfg.SeedUserPassword != "" {
		if err := services.ValidatePasswordStrength(cfg.SeedUserPassword); err != nil {
			return errors.New("SEED_USER_PASSWORD must be at least 8 characters and mix upper case, lower case and digits")
		}
		hash, err := services.HashPassword(cfg.SeedUserPassword)
		if err != nil {
			return err
		}
		options.PasswordHash = hash
	}

	seeded, err := db.SeedDefaults(context.Background(), database, options)
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	if seeded {
		log.Info("seeded default drinks, user and daily limit", zap.String("email", db.DefaultUserEmail))
		if options.PasswordHash == "" {
			log.Warn("default user has no password; run `dailybrew set-password` to enable login")
		}
	}
	return nil
}

func alertSenders(cfg *config.Config, log *zap.Logger) []services.AlertSender {
	senders := []services.AlertSender{notify.NewLogSender(log)}
	if !cfg.TelegramEnabled() {
		return senders
	}

	telegram, err := notify.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Warn("telegram alerts disabled", zap.Error(err))
		return senders
	}
	return append(senders, telegram)
}
