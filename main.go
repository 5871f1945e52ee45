package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guessword/go-server/internal/config"
	"github.com/guessword/go-server/internal/game"
	"github.com/guessword/go-server/internal/httpserver"
	"github.com/guessword/go-server/internal/hub"
	"github.com/guessword/go-server/internal/room"
	"github.com/guessword/go-server/internal/store"
	"github.com/guessword/go-server/internal/token"
	"github.com/guessword/go-server/internal/words"
	"github.com/guessword/go-server/internal/ws"
	"github.com/guessword/go-server/internal/zhuyin"
)

func main() {
	cfg := config.Load()
	cfg.SetupLogging()

	idx, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.WordsFile).Msg("word list unavailable, using embedded list")
		idx = words.Fallback()
	}
	n, chars, fallback := idx.Stats()
	log.Info().Int("words", n).Int("chars", chars).Bool("fallback", fallback).Msg("word index loaded")

	archive := openArchive(cfg.ResultsDB)

	if cfg.DevSecret() {
		log.Warn().Msg("TOKEN_SECRET not set, using development secret")
	}
	tokens := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)

	conv := zhuyin.New()
	h := hub.New(room.NewRegistry(), game.NewEngine(idx, conv), idx, tokens, archive, hub.Config{
		AdvanceDelay: cfg.AdvanceDelay,
		Locale:       cfg.Locale,
	})
	sock := ws.NewServer(h, ws.Config{Rate: cfg.WSRate, Burst: cfg.WSBurst, Origin: cfg.ClientOrigin})
	h.SetSink(sock)

	srv := httpserver.New(httpserver.Deps{
		Lobby:        h,
		Words:        idx,
		Zhuyin:       conv,
		Archive:      archive,
		Socket:       sock,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openArchive picks sqlite when RESULTS_DB is set and memory otherwise.
func openArchive(dsn string) store.Archive {
	if dsn == "" {
		return store.NewMemoryArchive(500)
	}
	db, err := store.OpenSQLite(dsn)
	if err != nil {
		log.Fatal().Err(err).Str("db", dsn).Msg("open results db")
	}
	log.Info().Str("db", dsn).Msg("results archive ready")
	return db
}
