package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"questionnaire/docs"
	"questionnaire/internal/ratelimiter"
	"questionnaire/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	store       store.Storage
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	env         string
	apiURL      string
	storage     string
	seed        string
	db          dbConfig
	cors        corsConfig
	logLevel    string
	rateLimiter ratelimiter.Config
}

type dbConfig struct {
	addr         string
	maxConns     int32
	maxIdleTime  string
	createSchema bool
}

type corsConfig struct {
	allowedOrigins []string
}

var (
	corsAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	corsAllowedHeaders = []string{"Accept", "Content-Type", "Origin", "X-Request-Id"}
)

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(app.corsGuard)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.cors.allowedOrigins,
		AllowedMethods:   corsAllowedMethods,
		AllowedHeaders:   corsAllowedHeaders,
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	// set before any Route so sub-routers inherit them
	r.NotFound(app.routeNotFoundHandler)
	r.MethodNotAllowed(app.routeNotFoundHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/debug/vars", expvar.Handler().ServeHTTP)

		docsURL := fmt.Sprintf("%s/v1/swagger/doc.json", app.config.apiURL)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", app.getQuestionsHandler)
			r.Post("/", app.addQuestionHandler)

			r.Route("/{questionID}", func(r chi.Router) {
				r.Get("/", app.getQuestionHandler)
				r.Put("/", app.updateQuestionHandler)
				r.Delete("/", app.deleteQuestionHandler)
				r.Get("/answers", app.getAnswersHandler)
			})
		})

		r.Post("/answers", app.addAnswerHandler)
	})

	return r
}

const shutdownTimeout = 5 * time.Second

// configureDocs points the served API document at this deployment.
func (app *application) configureDocs() {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"
}

// run serves mux until SIGINT or SIGTERM, then drains in-flight requests.
func (app *application) run(mux http.Handler) error {
	app.configureDocs()

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "storage", app.store.Kind)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		stop()
	}

	app.logger.Infow("shutting down", "addr", app.config.addr, "timeout", shutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)
	return nil
}
