package main

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/hamrobank/ledger/cmd/httpserver"
	"github.com/hamrobank/ledger/internal/middleware"
	"github.com/hamrobank/ledger/pkg/configpkg"
	"github.com/hamrobank/ledger/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddress})

	server, err := httpserver.New(conn, redisClient, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Engine.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
