package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"lojasocial/config"
	"lojasocial/internal/pkg/cache"
	"lojasocial/internal/pkg/database"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/pkg/metrics"
	"lojasocial/internal/pkg/middleware"
	"lojasocial/internal/pkg/token"

	// Handlers
	"lojasocial/internal/api/auth"
	"lojasocial/internal/api/beneficiary"
	"lojasocial/internal/api/campaign"
	"lojasocial/internal/api/delivery"
	"lojasocial/internal/api/product"
	reportapi "lojasocial/internal/api/report"
	"lojasocial/internal/api/request"
	"lojasocial/internal/api/router"
	"lojasocial/internal/api/stock"

	// Acesso a dados
	"lojasocial/internal/repository/beneficiaryrepo"
	"lojasocial/internal/repository/campaignrepo"
	"lojasocial/internal/repository/deliveryrepo"
	"lojasocial/internal/repository/draftrepo"
	"lojasocial/internal/repository/productrepo"
	"lojasocial/internal/repository/requestrepo"
	"lojasocial/internal/repository/sessionrepo"
	"lojasocial/internal/repository/stockrepo"
	"lojasocial/internal/repository/userrepo"

	// Lógica de negócio
	"lojasocial/internal/report"
	"lojasocial/internal/service/authservice"
	"lojasocial/internal/service/beneficiaryservice"
	"lojasocial/internal/service/campaignservice"
	"lojasocial/internal/service/deliveryservice"
	"lojasocial/internal/service/productservice"
	"lojasocial/internal/service/requestservice"
	"lojasocial/internal/service/stockservice"
)

// @title Loja Social API
// @version 1.0
// @description Stock, beneficiários, pedidos e entregas da Loja Social.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço Loja Social...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("configuração inválida: %v", err)
	}
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "store": cfg.StoreDriver})

	// 1. Cache (Redis): rascunhos, tokens revogados, rate limit e feed de alterações.
	cacheClient, err := cache.NewRedisClient(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		appLog.Fatal("Falha ao conectar ao Redis.", err)
	}
	defer cacheClient.Close()
	appLog.Info("Conexão Redis estabelecida.", nil)

	// 2. Store de documentos
	store, err := openStore(ctx, cfg, cacheClient, appLog)
	if err != nil {
		appLog.Fatal("Falha ao abrir o store de documentos.", err)
	}
	defer store.Close()
	appLog.Info("Store de documentos pronto.", map[string]interface{}{"driver": cfg.StoreDriver})

	// 3. Repository -> Service -> Handler
	productRepo := productrepo.NewProductRepository(store, cacheClient, cfg.CacheTTL, appLog)
	stockRepo := stockrepo.NewStockRepository(store, appLog)
	beneficiaryRepo := beneficiaryrepo.NewBeneficiaryRepository(store, appLog)
	campaignRepo := campaignrepo.NewCampaignRepository(store, appLog)
	requestRepo := requestrepo.NewRequestRepository(store, appLog)
	deliveryRepo := deliveryrepo.NewDeliveryRepository(store, appLog)
	draftRepo := draftrepo.NewDraftRepository(cacheClient, cfg.DraftTTL, appLog)
	userRepo := userrepo.NewUserRepository(store, appLog)
	revocations := sessionrepo.NewRevocationRepository(cacheClient, appLog)

	recorder := metrics.Recorder{}
	stockSvc := stockservice.NewService(stockRepo, productRepo, cfg.Location(), appLog).WithMetrics(recorder)
	productSvc := productservice.NewService(productRepo, stockSvc, appLog)
	beneficiarySvc := beneficiaryservice.NewService(beneficiaryRepo, appLog)
	campaignSvc := campaignservice.NewService(campaignRepo, appLog)
	requestSvc := requestservice.NewService(requestRepo, beneficiarySvc, appLog)
	deliverySvc := deliveryservice.NewService(draftRepo, deliveryRepo, productRepo, stockSvc, requestSvc, beneficiarySvc, appLog).
		WithMetrics(recorder)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	authSvc := authservice.NewService(userRepo, tokenSvc, revocations, appLog)
	reportSvc := report.NewService(productSvc, stockSvc, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	if cfg.AdminEmail != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			appLog.Fatal("Falha ao criar a conta de administração.", err)
		}
	}

	handlers := router.Handlers{
		Auth:        auth.NewHandler(authSvc, appLog),
		Beneficiary: beneficiary.NewHandler(beneficiarySvc, appLog),
		Campaign:    campaign.NewHandler(campaignSvc, appLog),
		Product:     product.NewHandler(productSvc, appLog),
		Stock:       stock.NewHandler(stockSvc, appLog),
		Request:     request.NewHandler(requestSvc, appLog),
		Delivery:    delivery.NewHandler(deliverySvc, appLog),
		Report:      reportapi.NewHandler(reportSvc, appLog),
	}

	// 4. Roteador e servidor
	r := router.NewRouter(handlers, router.Options{
		Auth:      authSvc,
		RateLimit: middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, appLog),
		Metrics:   middleware.Metrics(appLog),
		Store:     store,
		Cache:     cacheClient,
	})

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// Sem WriteTimeout: o stream de pedidos (SSE) fica aberto enquanto o cliente quiser.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		appLog.Info("Servidor Loja Social ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

// openStore escolhe o driver do store de documentos conforme STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, notifier docstore.Notifier, appLog logger.Logger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return docstore.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.DBTimeout)
	case config.DriverMemory:
		appLog.Warn("Store em memória: os dados perdem-se ao reiniciar.", nil)
		return docstore.NewMemoryStore(), nil
	default:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return docstore.NewPostgresStore(db, notifier, appLog, cfg.DBTimeout), nil
	}
}
