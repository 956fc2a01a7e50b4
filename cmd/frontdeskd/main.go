package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/MarkoPoloResearchLab/frontdesk/internal/httpapi"
	"github.com/MarkoPoloResearchLab/frontdesk/internal/oplog"
	"github.com/MarkoPoloResearchLab/frontdesk/internal/store/gormstore"
	"github.com/MarkoPoloResearchLab/frontdesk/internal/store/pgstore"
	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	serviceName = "frontdeskd"
	envPrefix   = "FRONTDESK"

	flagDatabaseURL       = "database-url"
	flagStoreEngine       = "store-engine"
	flagListenAddr        = "listen-addr"
	flagAllowedOrigins    = "allowed-origins"
	flagSessionSigningKey = "session-signing-key"
	flagSessionIssuer     = "session-issuer"
	flagSessionCookieName = "session-cookie-name"
	flagSuperAdmins       = "super-admins"
	flagTimezone          = "timezone"
	flagLogLevel          = "log-level"
	flagLogFormat         = "log-format"
	flagRequestTimeout    = "request-timeout"

	defaultDatabaseURL    = "sqlite:///tmp/frontdesk.db"
	defaultListenAddr     = ":8080"
	defaultTimezone       = "Asia/Tashkent"
	defaultRequestTimeout = 10 * time.Second

	storeEngineGorm = "gorm"
	storeEnginePgx  = "pgx"

	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
	driverMySQL    = "mysql"
)

type runtimeConfig struct {
	DatabaseURL string
	StoreEngine string
	Timezone    string
	LogLevel    string
	LogFormat   string
	HTTP        httpapi.Config
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "%s: load .env: %v\n", serviceName, err)
		os.Exit(1)
	}
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &runtimeConfig{}
	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Hotel front-desk HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, viper.New(), cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().String(flagDatabaseURL, defaultDatabaseURL, "Database URL (postgres://, mysql://, sqlite:// or a sqlite file path)")
	cmd.Flags().String(flagStoreEngine, storeEngineGorm, "Store implementation: gorm or pgx (pgx requires a postgres URL)")
	cmd.Flags().String(flagListenAddr, defaultListenAddr, "HTTP listen address")
	cmd.Flags().String(flagAllowedOrigins, "", "Comma-separated CORS origins")
	cmd.Flags().String(flagSessionSigningKey, "", "TAuth session signing key")
	cmd.Flags().String(flagSessionIssuer, "tauth", "TAuth session issuer")
	cmd.Flags().String(flagSessionCookieName, "app_session", "TAuth session cookie name")
	cmd.Flags().String(flagSuperAdmins, "", "Comma-separated user ids granted the super_admin role")
	cmd.Flags().String(flagTimezone, defaultTimezone, "Hotel timezone that defines calendar days")
	cmd.Flags().String(flagLogLevel, "info", "Log level")
	cmd.Flags().String(flagLogFormat, oplog.FormatJSON, "Log format: json or console")
	cmd.Flags().Duration(flagRequestTimeout, defaultRequestTimeout, "Per-request timeout")

	return cmd
}

func loadConfig(cmd *cobra.Command, settings *viper.Viper, cfg *runtimeConfig) error {
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	if err := settings.BindEnv(flagDatabaseURL, envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return err
	}
	if err := settings.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg.DatabaseURL = strings.TrimSpace(settings.GetString(flagDatabaseURL))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}
	cfg.StoreEngine = strings.ToLower(strings.TrimSpace(settings.GetString(flagStoreEngine)))
	if cfg.StoreEngine == "" {
		cfg.StoreEngine = storeEngineGorm
	}
	cfg.Timezone = settings.GetString(flagTimezone)
	cfg.LogLevel = settings.GetString(flagLogLevel)
	cfg.LogFormat = settings.GetString(flagLogFormat)
	cfg.HTTP = httpapi.Config{
		ListenAddr:        settings.GetString(flagListenAddr),
		AllowedOrigins:    httpapi.ParseList(settings.GetString(flagAllowedOrigins)),
		SessionSigningKey: settings.GetString(flagSessionSigningKey),
		SessionIssuer:     settings.GetString(flagSessionIssuer),
		SessionCookieName: settings.GetString(flagSessionCookieName),
		RequestTimeout:    settings.GetDuration(flagRequestTimeout),
		SuperAdminIDs:     httpapi.ParseList(settings.GetString(flagSuperAdmins)),
	}

	switch cfg.StoreEngine {
	case storeEngineGorm:
	case storeEnginePgx:
		if driver, _, err := resolveDriver(cfg.DatabaseURL); err != nil || driver != driverPostgres {
			return fmt.Errorf("store engine %s requires a postgres database url", storeEnginePgx)
		}
	default:
		return fmt.Errorf("unsupported store engine %q", cfg.StoreEngine)
	}
	return cfg.HTTP.Validate()
}

func runServer(ctx context.Context, cfg *runtimeConfig) error {
	logger, err := oplog.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store open: %w", err)
	}
	defer cleanup()

	service, err := frontdesk.NewService(store, time.Now,
		frontdesk.WithLocation(location),
		frontdesk.WithOperationLogger(oplog.NewZapOperationLogger(logger)),
	)
	if err != nil {
		return fmt.Errorf("frontdesk service init: %w", err)
	}
	logger.Info("frontdesk store ready",
		zap.String("engine", cfg.StoreEngine),
		zap.String("timezone", location.String()),
	)
	return httpapi.Run(ctx, cfg.HTTP, service, logger)
}

func openStore(ctx context.Context, cfg *runtimeConfig) (frontdesk.Store, func(), error) {
	if cfg.StoreEngine == storeEnginePgx {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgstore.New(pool), pool.Close, nil
	}
	gormDB, closeDB, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := gormstore.AutoMigrate(gormDB); err != nil {
		_ = closeDB()
		return nil, nil, fmt.Errorf("auto migrate: %w", err)
	}
	return gormstore.New(gormDB), func() { _ = closeDB() }, nil
}

func openDatabase(ctx context.Context, dsn string) (*gorm.DB, func() error, error) {
	driver, target, err := resolveDriver(dsn)
	if err != nil {
		return nil, nil, err
	}

	var db *gorm.DB
	cfg := &gorm.Config{}
	switch driver {
	case driverPostgres:
		db, err = gorm.Open(postgres.Open(target), cfg)
	case driverMySQL:
		db, err = gorm.Open(gormmysql.Open(target), cfg)
	case driverSQLite:
		db, err = gorm.Open(sqlite.Open(target), cfg)
	default:
		return nil, nil, fmt.Errorf("unsupported database scheme %q", driver)
	}
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if driver == driverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	cleanup := func() error { return sqlDB.Close() }
	return db.WithContext(ctx), cleanup, nil
}

// resolveDriver returns the driver name and the connection target for dsn.
func resolveDriver(dsn string) (string, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return driverPostgres, dsn, nil
	}
	if strings.HasPrefix(dsn, "mysql://") {
		target, err := mysqlTarget(strings.TrimPrefix(dsn, "mysql://"))
		return driverMySQL, target, err
	}
	if strings.HasPrefix(dsn, "sqlite://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse sqlite url: %w", err)
		}
		path := u.Path
		if path == "" {
			path = u.Host
		}
		if path == "" || path == "/" {
			path = "frontdesk.db"
		}
		sqlitePath, err := normalizeSQLitePath(path)
		return driverSQLite, sqlitePath, err
	}
	// Treat everything else as a direct sqlite path.
	sqlitePath, err := normalizeSQLitePath(dsn)
	return driverSQLite, sqlitePath, err
}

// mysqlTarget normalizes a go-sql-driver DSN. Conditional updates rely on matched
// rather than changed row counts, so clientFoundRows is always on.
func mysqlTarget(raw string) (string, error) {
	config, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	config.ParseTime = true
	config.ClientFoundRows = true
	config.Loc = time.UTC
	return config.FormatDSN(), nil
}

func normalizeSQLitePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if strings.HasPrefix(path, "/") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		return path, nil
	}
	abs := filepath.Join(".", path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	return abs, nil
}
