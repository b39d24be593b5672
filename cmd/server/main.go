package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinegraph/cartelera/internal/config"
	"github.com/cinegraph/cartelera/internal/database"
	"github.com/cinegraph/cartelera/internal/handler"
	"github.com/cinegraph/cartelera/internal/metric"
	"github.com/cinegraph/cartelera/internal/repository"
	"github.com/cinegraph/cartelera/internal/router"
)

func main() {
	cfg := config.Load() // Load environment config

	ctx := context.Background()
	driver, err := database.Open(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatalf("neo4j connection failed: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	reg := prometheus.NewRegistry()
	metrics := metric.New()
	metrics.Register(reg)
	e.Use(metrics.Middleware())
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Repositories share the process-wide driver; each call opens and
	// closes its own session.
	movies := repository.NewMovieRepo(driver)
	showings := repository.NewShowingRepo(driver)
	rooms := repository.NewRoomRepo(driver)

	router.RegisterRoutes(e, &handler.HealthHandler{
		Ping: func(ctx context.Context) error { return database.Ping(ctx, driver) },
	})
	router.RegisterMovies(e, &handler.MovieHandler{Movies: movies})
	router.RegisterShowings(e, &handler.ShowingHandler{Showings: showings})
	router.RegisterRooms(e, &handler.RoomHandler{Rooms: rooms})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := driver.Close(shutdownCtx); err != nil {
		log.Printf("driver close: %v", err)
	}
}
