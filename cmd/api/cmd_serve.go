package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/spf13/cobra"
)

// storefront serve — HTTPサーバーを起動する。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := newLogger(cfg.Log.Level, cfg.Log.Format)

		//DB接続
		gormDB, err := db.Connect(cfg.DatabasePath)
		if err != nil {
			return err
		}
		if err := db.Migrate(gormDB); err != nil {
			return err
		}

		//初期カタログ投入（空のときだけ）
		if err := db.SeedProducts(gormDB); err != nil {
			return err
		}

		//Repository（GORM実装）生成
		userRepo := infraRepo.NewUserGormRepository(gormDB)
		productRepo := infraRepo.NewProductGormRepository(gormDB)
		orderRepo := infraRepo.NewOrderGormRepository(gormDB)
		txManager := infraRepo.NewTxManagerGorm(gormDB)

		//usecaseに渡す部品
		idGen := &uuidGenerator{}
		clock := &realClock{}

		//bcrypt（会員登録：Hash / ログイン：Verify）
		hasher := auth.NewBcryptPasswordHasher(10)
		verifier := auth.NewBcryptPasswordVerifier()

		//JWT issuer
		issuer := newJWTIssuer(cfg.JWTSecret)

		//Usecase生成
		registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
		loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
		productUC := usecase.NewProductUsecase(productRepo)
		orderUC := usecase.NewOrderUsecase(txManager, idGen, clock)
		paymentUC := usecase.NewPaymentUsecase(&mathRandSource{}, idGen, orderRepo)

		//Handler生成
		handlers := server.Handlers{
			Auth:    handler.NewAuthHandler(registerUC, loginUC),
			Product: handler.NewProductHandler(productUC),
			Order:   handler.NewOrderHandler(orderUC),
			Payment: handler.NewPaymentHandler(paymentUC),
		}

		srv := server.New(cfg, logger, handlers)

		addr := cfg.HTTP.Addr()
		logger.Info("starting HTTP server", "addr", addr)

		go func() {
			if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server error", "err", err)
				os.Exit(1)
			}
		}()

		//SIGINT/SIGTERMでgraceful shutdown
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan

		logger.Info("signal received, shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(ctx)
	},
}
