// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hamrobank/ledger/internal/accountdelivery"
	"github.com/hamrobank/ledger/internal/accountrepo"
	"github.com/hamrobank/ledger/internal/accountservice"
	"github.com/hamrobank/ledger/internal/auditrepo"
	"github.com/hamrobank/ledger/internal/auditservice"
	"github.com/hamrobank/ledger/internal/auditstream"
	"github.com/hamrobank/ledger/internal/middleware"
	"github.com/hamrobank/ledger/internal/refgen"
	"github.com/hamrobank/ledger/internal/transactiondelivery"
	"github.com/hamrobank/ledger/internal/transactionrepo"
	"github.com/hamrobank/ledger/internal/transactionservice"
	"github.com/hamrobank/ledger/internal/transferdelivery"
	"github.com/hamrobank/ledger/internal/transferrepo"
	"github.com/hamrobank/ledger/internal/transferservice"
	"github.com/hamrobank/ledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, redisClient *redis.Client, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)

	auditService := auditservice.New(
		auditrepo.NewRepoPGS(conn),
		auditstream.NewPublisher(redisClient, config.AuditStream),
	)

	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo)
	transferService := transferservice.New(transferRepo, accountRepo, transactionRepo, refgen.New(), auditService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id/transactions", transactionHandler.ListRecent)
	engine.POST("/accounts/:id/deposits", transferHandler.Deposit)
	engine.POST("/accounts/:id/withdrawals", transferHandler.Withdraw)

	engine.POST("/transfers", transferHandler.Create)

	engine.GET("/transactions/:id", transactionHandler.Get)
	engine.GET("/references/:reference", transactionHandler.GetByReference)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accountnumber", accountdelivery.ValidAccountNumber)
		if err != nil {
			return nil, errors.New("cannot register account number validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
