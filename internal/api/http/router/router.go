package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/fuelsupply-server/internal/api/http/handler"
	"github.com/dtroode/fuelsupply-server/internal/api/http/middleware"
	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// AccessService is the access surface plus the admin check used by middleware.
type AccessService interface {
	handler.AccessService
	middleware.AdminGate
}

// Options contains transport parameters of the router.
type Options struct {
	Cookie         handler.CookieOptions
	AllowedOrigins []string
}

// Router wires handlers and middleware into the public HTTP API.
type Router struct {
	identityService handler.IdentityService
	accessService   AccessService
	contractService handler.ContractService
	orderService    handler.OrderService
	documentService handler.DocumentService
	contextManager  model.ContextManager
	options         Options
	logger          *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	identityService handler.IdentityService,
	accessService AccessService,
	contractService handler.ContractService,
	orderService handler.OrderService,
	documentService handler.DocumentService,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		identityService: identityService,
		accessService:   accessService,
		contractService: contractService,
		orderService:    orderService,
		documentService: documentService,
		contextManager:  contextManager,
		options:         options,
		logger:          logger,
	}
}

// Register builds the route table and wraps it with logging, CORS and tracing.
func (r *Router) Register() http.Handler {
	authenticate := middleware.NewAuthenticate(r.identityService, r.contextManager, r.options.Cookie.Name, r.logger)
	requireAdmin := middleware.NewRequireAdmin(r.accessService, r.contextManager)
	logging := middleware.NewLogging(r.logger)

	m := mux.NewRouter()
	m.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)

	api := m.PathPrefix("/api").Subrouter()
	r.registerSessionRoutes(api)
	r.registerCustomerRoutes(api, authenticate)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authenticate.Required, requireAdmin.Handle)
	r.registerAdminRoutes(admin)

	c := cors.New(cors.Options{
		AllowedOrigins:   r.options.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return otelhttp.NewHandler(c.Handler(logging.Handle(m)), "fuelsupply.http")
}

func (r *Router) registerSessionRoutes(api *mux.Router) {
	h := handler.NewSession(r.identityService, r.options.Cookie, r.logger)

	api.HandleFunc("/session", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/session", h.Delete).Methods(http.MethodDelete)
}

func (r *Router) registerCustomerRoutes(api *mux.Router, auth *middleware.Authenticate) {
	access := handler.NewAccess(r.accessService, r.contextManager, r.logger)
	contracts := handler.NewContract(r.contractService, r.contextManager, r.logger)
	orders := handler.NewOrder(r.orderService, r.contextManager, r.logger)

	api.Handle("/access/me", auth.Required(http.HandlerFunc(access.Me))).Methods(http.MethodGet)

	// latest must be registered before {id}
	api.Handle("/contracts", auth.Optional(http.HandlerFunc(contracts.CreateDraft))).Methods(http.MethodPost)
	api.Handle("/contracts/latest", auth.Optional(http.HandlerFunc(contracts.Latest))).Methods(http.MethodGet)
	api.Handle("/contracts/{id}", auth.Required(http.HandlerFunc(contracts.Get))).Methods(http.MethodGet)
	api.Handle("/contracts/{id}/sign", auth.Optional(http.HandlerFunc(contracts.Sign))).Methods(http.MethodPost)

	api.Handle("/orders", auth.Optional(http.HandlerFunc(orders.Create))).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/payment", orders.Webhook).Methods(http.MethodPost)
}

func (r *Router) registerAdminRoutes(admin *mux.Router) {
	access := handler.NewAccess(r.accessService, r.contextManager, r.logger)
	contracts := handler.NewContract(r.contractService, r.contextManager, r.logger)
	documents := handler.NewDocument(r.documentService, r.logger)

	admin.HandleFunc("/access", access.List).Methods(http.MethodGet)
	admin.HandleFunc("/access/approve", access.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/access/revoke", access.Revoke).Methods(http.MethodPost)
	admin.HandleFunc("/access/block", access.Block).Methods(http.MethodPost)
	admin.HandleFunc("/access/unblock", access.Unblock).Methods(http.MethodPost)
	admin.HandleFunc("/access/admins", access.GrantAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/access/admins", access.RevokeAdmin).Methods(http.MethodDelete)

	admin.HandleFunc("/contracts/{id}/approve", contracts.Approve).Methods(http.MethodPost)

	admin.HandleFunc("/invoices", documents.SendInvoice).Methods(http.MethodPost)
	admin.HandleFunc("/documents/{key:.+}", documents.Download).Methods(http.MethodGet)
}
