package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"questionnaire/internal/db"
	"questionnaire/internal/model"
	"questionnaire/internal/ratelimiter"
	"questionnaire/internal/seed"
	"questionnaire/internal/store"
	"questionnaire/internal/store/postgres"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            5 * time.Second,
		Enabled:              envBool("RATE_LIMITER_ENABLED", false),
	}
}

func loadConfig() config {
	return config{
		addr:    envString("ADDR", ":3030"),
		env:     envString("ENV", "development"),
		apiURL:  envString("EXTERNAL_URL", "localhost:3030"),
		storage: envString("STORAGE", store.KindMemory),
		seed:    os.Getenv("SEED_FILE"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxConns:     int32(envInt("DB_MAX_CONNS", 5)),
			maxIdleTime:  envString("DB_MAX_IDLE_TIME", "15m"),
			createSchema: envBool("DB_CREATE_SCHEMA", false),
		},
		cors: corsConfig{
			allowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		logLevel:    envString("LOG_LEVEL", "info"),
		rateLimiter: LoadRateLimiterConfig(),
	}
}

func envString(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %t\n", key, fallback)
		return fallback
	}
	return parsed
}

func envList(key string, fallback []string) []string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var list []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return fallback
	}
	return list
}

// NewLogger creates a new zap logger with color at the given level.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), lvl)

	return zap.New(core).Sugar(), nil
}

// openStorage builds the configured store. The returned func releases whatever the
// store holds and is never nil.
func openStorage(ctx context.Context, cfg config, logger *zap.SugaredLogger) (store.Storage, func(), error) {
	switch cfg.storage {
	case store.KindMemory:
		var questions []model.Question
		if cfg.seed != "" {
			var err error
			questions, err = seed.Load(cfg.seed)
			if err != nil {
				return store.Storage{}, func() {}, err
			}
			logger.Infow("seed loaded", "file", cfg.seed, "questions", len(questions))
		}
		s, err := store.NewMemoryStorage(questions)
		return s, func() {}, err

	case store.KindPostgres:
		pool, err := db.New(ctx, db.Config{
			Addr:        cfg.db.addr,
			MaxConns:    cfg.db.maxConns,
			MaxIdleTime: cfg.db.maxIdleTime,
		})
		if err != nil {
			return store.Storage{}, func() {}, err
		}
		logger.Info("database connection pool established")

		if cfg.db.createSchema {
			if err := postgres.CreateSchema(ctx, pool); err != nil {
				pool.Close()
				return store.Storage{}, func() {}, err
			}
			logger.Info("database schema ensured")
		}
		return store.NewPostgresStorage(pool), pool.Close, nil
	}

	return store.Storage{}, func() {}, fmt.Errorf("unknown STORAGE %q, want %s or %s", cfg.storage, store.KindMemory, store.KindPostgres)
}

// publishMetrics registers the expvar values served on /v1/debug/vars.
func publishMetrics(storage store.Storage) {
	expvar.NewString("version").Set(version)
	expvar.NewString("storage").Set(storage.Kind)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("questions", expvar.Func(func() any {
		return countOrNegative(storage.Questions.Count)
	}))
	expvar.Publish("answers", expvar.Func(func() any {
		return countOrNegative(storage.Answers.Count)
	}))
}

func countOrNegative(count func(context.Context) (int, error)) int {
	ctx, cancel := context.WithTimeout(context.Background(), postgres.QueryTimeoutDuration)
	defer cancel()

	n, err := count(ctx)
	if err != nil {
		return -1
	}
	return n
}

var version = "1.0.0"

//	@title			Questionnaire API
//	@description	Questions and answers over HTTP.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath	/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfig()

	logger, err := NewLogger(cfg.logLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), db.ConnectTimeout)
	storage, closeStorage, err := openStorage(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal(err)
	}
	defer closeStorage()

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:      cfg,
		store:       storage,
		logger:      logger,
		rateLimiter: rateLimiter,
	}

	//Metrics collected http://localhost:3030/v1/debug/vars
	publishMetrics(storage)

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}
