package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/sparkchat/sparkd/internal/api"
	"github.com/sparkchat/sparkd/internal/auth"
	"github.com/sparkchat/sparkd/internal/config"
	"github.com/sparkchat/sparkd/internal/database"
	"github.com/sparkchat/sparkd/internal/message"
	"github.com/sparkchat/sparkd/internal/server"
	"github.com/sparkchat/sparkd/internal/stats"
)

var (
	addr           string
	dsn            string
	allowedOrigins string
)

func main() {
	flag.StringVar(&addr, "addr", "localhost:8000", "server address")
	flag.StringVar(&dsn, "dsn", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable", "database connection string")
	flag.StringVar(&allowedOrigins, "allowed-origins", "", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	logger := log.New(os.Stderr, "[sparkd] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, dsn, allowedOrigins)
	if err != nil {
		logger.Fatal("config: ", err)
	}

	db, err := database.NewPgRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Fatal("db close: ", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("db migrate: ", err)
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	authSvc := auth.NewService(logger, db)
	msgSvc := message.NewService(logger, db)
	chatServer := server.NewChatServer(logger, authSvc, msgSvc, statsUpdater)

	srv := api.NewServer(logger, authSvc, chatServer, cfg, mux)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
