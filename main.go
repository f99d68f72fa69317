package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tanosveny/auth"
	"tanosveny/config"
	"tanosveny/handlers"
	"tanosveny/render"
	"tanosveny/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	st := store.New(db)
	if err := st.SeedAdmin(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("seeding admin user")
	}

	sessions := auth.NewManager(cfg.SessionSecret, cfg.BasePath)
	app := handlers.New(cfg, st, sessions, render.New())

	mux := http.NewServeMux()
	mux.Handle("GET "+cfg.BasePath+"/static/",
		http.StripPrefix(cfg.BasePath+"/static/", http.FileServer(http.Dir("static"))))
	app.Register(mux)

	handler := handlers.RequestLogger(handlers.Recover(handlers.MethodOverride(mux)))

	addr := cfg.ListenAddr()
	log.Info().Str("addr", addr).Str("base_path", cfg.BasePath).Msg("server starting")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
