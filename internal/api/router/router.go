package router

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "lojasocial/docs" // regista a especificação OpenAPI servida em /swagger/
	"lojasocial/internal/api/auth"
	"lojasocial/internal/api/beneficiary"
	"lojasocial/internal/api/campaign"
	"lojasocial/internal/api/delivery"
	"lojasocial/internal/api/product"
	"lojasocial/internal/api/report"
	"lojasocial/internal/api/request"
	"lojasocial/internal/api/stock"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/middleware"
)

// Pinger é qualquer dependência cuja saúde é exposta em /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Auth        *auth.Handler
	Beneficiary *beneficiary.Handler
	Campaign    *campaign.Handler
	Product     *product.Handler
	Stock       *stock.Handler
	Request     *request.Handler
	Delivery    *delivery.Handler
	Report      *report.Handler
}

// Options configura os middlewares e as verificações de saúde.
type Options struct {
	Auth      middleware.Authenticator
	RateLimit func(http.Handler) http.Handler
	Metrics   func(http.Handler) http.Handler
	Store     Pinger
	Cache     Pinger
}

// NewRouter configura e retorna o roteador HTTP principal.
// As rotas /v1 exigem sessão, exceto o login; /v1/utilizadores exige papel admin.
func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.NewAuthMiddleware(opts.Auth)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	protect := func(fn http.HandlerFunc) http.Handler { return authed(opts.RateLimit(fn)) }

	// --- Saúde e observabilidade ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.HandleFunc("GET /health/store", healthHandler(opts.Store, opts.Cache))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Autenticação ---
	mux.Handle("POST /v1/login", opts.RateLimit(http.HandlerFunc(h.Auth.LoginHandler)))
	mux.Handle("POST /v1/logout", protect(h.Auth.LogoutHandler))
	mux.Handle("GET /v1/me", protect(h.Auth.MeHandler))
	mux.Handle("POST /v1/utilizadores", authed(adminOnly(http.HandlerFunc(h.Auth.RegisterHandler))))

	// --- Beneficiários ---
	mux.Handle("POST /v1/beneficiarios", protect(h.Beneficiary.CreateBeneficiaryHandler))
	mux.Handle("GET /v1/beneficiarios", protect(h.Beneficiary.ListBeneficiariesHandler))
	mux.Handle("GET /v1/beneficiarios/{id}", protect(h.Beneficiary.GetBeneficiaryHandler))
	mux.Handle("PUT /v1/beneficiarios/{id}", protect(h.Beneficiary.UpdateBeneficiaryHandler))
	mux.Handle("DELETE /v1/beneficiarios/{id}", protect(h.Beneficiary.DeleteBeneficiaryHandler))

	// --- Campanhas ---
	mux.Handle("POST /v1/campanhas", protect(h.Campaign.CreateCampaignHandler))
	mux.Handle("GET /v1/campanhas", protect(h.Campaign.ListCampaignsHandler))
	mux.Handle("GET /v1/campanhas/{id}", protect(h.Campaign.GetCampaignHandler))
	mux.Handle("PUT /v1/campanhas/{id}", protect(h.Campaign.UpdateCampaignHandler))
	mux.Handle("DELETE /v1/campanhas/{id}", protect(h.Campaign.DeleteCampaignHandler))

	// --- Produtos e lotes ---
	mux.Handle("POST /v1/produtos", protect(h.Product.CreateProductHandler))
	mux.Handle("GET /v1/produtos", protect(h.Product.ListProductsHandler))
	mux.Handle("GET /v1/produtos/{id}", protect(h.Product.GetProductByIDHandler))
	mux.Handle("PUT /v1/produtos/{id}", protect(h.Product.UpdateProductHandler))
	mux.Handle("DELETE /v1/produtos/{id}", protect(h.Product.DeleteProductHandler))
	mux.Handle("GET /v1/produtos/{id}/lotes", protect(h.Stock.ListLotsHandler))
	mux.Handle("POST /v1/produtos/{id}/lotes", protect(h.Stock.AddLotHandler))
	mux.Handle("POST /v1/produtos/{id}/limpar-expirados", protect(h.Stock.ClearExpiredHandler))
	mux.Handle("DELETE /v1/lotes/{id}", protect(h.Stock.DeleteLotHandler))

	// --- Pedidos ---
	mux.Handle("POST /v1/pedidos", protect(h.Request.CreateRequestHandler))
	mux.Handle("GET /v1/pedidos", protect(h.Request.ListRequestsHandler))
	mux.Handle("GET /v1/pedidos/stream", authed(http.HandlerFunc(h.Request.StreamRequestsHandler)))
	mux.Handle("GET /v1/pedidos/{id}", protect(h.Request.GetRequestHandler))
	mux.Handle("POST /v1/pedidos/{id}/aceitar", protect(h.Request.AcceptRequestHandler))
	mux.Handle("POST /v1/pedidos/{id}/recusar", protect(h.Request.RefuseRequestHandler))

	// --- Rascunhos e entregas ---
	mux.Handle("POST /v1/rascunhos", protect(h.Delivery.NewDraftHandler()))
	mux.Handle("GET /v1/rascunhos/{id}", protect(h.Delivery.GetDraftHandler()))
	mux.Handle("DELETE /v1/rascunhos/{id}", protect(h.Delivery.DiscardDraftHandler()))
	mux.Handle("GET /v1/rascunhos/{id}/candidatos", protect(h.Delivery.CandidatesHandler()))
	mux.Handle("PUT /v1/rascunhos/{id}/beneficiario", protect(h.Delivery.SetBeneficiaryHandler()))
	mux.Handle("POST /v1/rascunhos/{id}/itens", protect(h.Delivery.AddItemHandler()))
	mux.Handle("POST /v1/rascunhos/{id}/itens/{produtoId}/incrementar", protect(h.Delivery.IncreaseHandler()))
	mux.Handle("POST /v1/rascunhos/{id}/itens/{produtoId}/decrementar", protect(h.Delivery.DecreaseHandler()))
	mux.Handle("DELETE /v1/rascunhos/{id}/itens/{produtoId}", protect(h.Delivery.RemoveItemHandler()))
	mux.Handle("POST /v1/rascunhos/{id}/guardar", protect(h.Delivery.SaveDraftHandler()))
	mux.Handle("GET /v1/entregas", protect(h.Delivery.ListDeliveriesHandler))
	mux.Handle("GET /v1/entregas/{id}", protect(h.Delivery.GetDeliveryHandler))
	mux.Handle("POST /v1/entregas/{id}/terminar", protect(h.Delivery.FinishDeliveryHandler()))

	// --- Relatórios ---
	mux.Handle("GET /v1/relatorios/stock.xlsx", protect(h.Report.StockReportHandler))

	return opts.Metrics(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func healthHandler(store, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := "ok"
		if err := store.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "store indisponível: "+err.Error()
		} else if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, "cache indisponível: "+err.Error()
			}
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}
