package main

import (
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chainpost/vouch/adapters/events"
	"github.com/chainpost/vouch/adapters/store"
	"github.com/chainpost/vouch/adapters/tokenizer"
	"github.com/chainpost/vouch/adapters/verifier"
	"github.com/chainpost/vouch/config"
	"github.com/chainpost/vouch/service"
	"github.com/chainpost/vouch/transport/http"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse Redis URL")
	}
	redisClient := redis.NewClient(opts)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	identities := store.NewPostgresIdentityRepository(db)

	authService := service.NewAuthService(
		store.NewRedisChallengeStore(redisClient),
		identities,
		tokenizer.NewJWTTokenizer(cfg.JWTSecret, cfg.SessionTTL),
		verifier.DefaultRegistry(),
		events.NewWatermillPublisher(publisher),
		service.WithChallengeTTL(cfg.ChallengeTTL),
	)

	router := http.SetupRouter(authService, identities)

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting vouchd")
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
