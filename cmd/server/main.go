package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mtilda/chipin/internal/auth"
	"github.com/mtilda/chipin/internal/config"
	chipinHttp "github.com/mtilda/chipin/internal/http"
	authHandler "github.com/mtilda/chipin/internal/http/auth"
	balanceHandler "github.com/mtilda/chipin/internal/http/balance"
	expenseHandler "github.com/mtilda/chipin/internal/http/expense"
	groupHandler "github.com/mtilda/chipin/internal/http/group"
	settlementHandler "github.com/mtilda/chipin/internal/http/settlement"
	"github.com/mtilda/chipin/internal/service"
	"github.com/mtilda/chipin/internal/storage/sqlite"
	"github.com/mtilda/chipin/pkg/logging"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.JSONLogs())

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DB.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	var (
		authService       = service.NewAuthService(authenticator, jwtManager, store)
		groupService      = service.NewGroupService(store)
		expenseService    = service.NewExpenseService(store)
		settlementService = service.NewSettlementService(store)
		ledgerService     = service.NewLedgerService(store)
	)

	var (
		authH       = authHandler.NewHandler(authService)
		groupsH     = groupHandler.NewHandler(groupService)
		expensesH   = expenseHandler.NewHandler(expenseService)
		settlementH = settlementHandler.NewHandler(settlementService)
		balancesH   = balanceHandler.NewHandler(ledgerService)
	)

	router := chipinHttp.New(jwtManager, cfg.CORS.AllowedOrigins,
		authH, groupsH, expensesH, settlementH, balancesH)

	// h2c allows HTTP/2 without TLS when running behind a terminating proxy.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server starting", "name", cfg.App.Name, "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
