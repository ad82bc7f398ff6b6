package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbot/internal/config"
	"github.com/robalobadob/wordbot/internal/dict"
	"github.com/robalobadob/wordbot/internal/dispatch"
	"github.com/robalobadob/wordbot/internal/gateway"
	"github.com/robalobadob/wordbot/internal/history"
	"github.com/robalobadob/wordbot/internal/httpserver"
	"github.com/robalobadob/wordbot/internal/session"
	"github.com/robalobadob/wordbot/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg := config.Load()

	lex := words.Load(context.Background(), cfg.WordsURL, cfg.WordsFile)

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	hist := history.NewStore(db)
	reg := session.New(lex, session.WithTimeout(cfg.SessionTimeout))
	gw := gateway.New()
	d := dispatch.New(reg, gw, dict.New(cfg.DictURL), hist, cfg.Prefix)
	gw.SetHandler(d)

	srv := httpserver.New(cfg, reg, lex, gw, hist)
	log.Info().
		Str("port", cfg.Port).
		Str("prefix", cfg.Prefix).
		Bool("degraded_lexicon", lex.Degraded()).
		Msg("starting wordbot")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
