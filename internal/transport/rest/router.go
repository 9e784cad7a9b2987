package rest

import (
	"net/http"
	"time"

	"surveyhub/internal/apperr"
	"surveyhub/internal/config"
	"surveyhub/internal/log"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/envelope"
	"surveyhub/internal/transport/rest/handler"
	"surveyhub/internal/transport/rest/middleware"
	"surveyhub/internal/transport/ws"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	TokenService     *service.TokenService
	AccountService   *service.AccountService
	SurveyService    *service.SurveyService
	ResponseService  *service.ResponseService
	AnalyticsService *service.AnalyticsService
	WSHub            *ws.Hub
	CORS             config.CORSConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AccountService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	responseHandler := handler.NewResponseHandler(c.ResponseService, c.AnalyticsService)
	wsHandler := ws.NewHandler(c.WSHub, c.TokenService, c.SurveyService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.TokenService)

	// Route middleware does not run for unmatched requests, so the 404 and
	// 405 handlers get the same chain wrapped around them directly.
	edge := []mux.MiddlewareFunc{chimw.RequestID, chimw.RealIP, accessLog, chimw.Recoverer, corsMiddleware(c.CORS)}
	r.Use(edge...)

	r.NotFoundHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope.Error(w, r, apperr.NotFound("route"))
	}), edge...)
	r.MethodNotAllowedHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, envelope.Response{Status: envelope.StatusError, Message: "method not allowed"})
	}), edge...)

	// Preflight for every path; the CORS middleware answers it
	r.MatcherFunc(func(r *http.Request, _ *mux.RouteMatch) bool {
		return r.Method == http.MethodOptions
	}).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			envelope.Error(w, r, apperr.Internal("read swagger doc", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods(http.MethodGet)

	// API v1 routes. Auth is wrapped per route rather than through
	// subrouters so a path known under another method still answers 405.
	v1 := r.PathPrefix("/v1").Subrouter()
	public := func(h http.HandlerFunc) http.Handler { return h }
	optional := func(h http.HandlerFunc) http.Handler { return authMW.OptionalAuth(h) }
	authed := func(h http.HandlerFunc) http.Handler { return authMW.RequireAuth(h) }
	admin := func(h http.HandlerFunc) http.Handler { return authMW.RequireAdmin(h) }

	// Accounts and sessions
	v1.Handle("/users", public(authHandler.SignupUser)).Methods(http.MethodPost)
	v1.Handle("/users", admin(authHandler.ListUsers)).Methods(http.MethodGet)
	v1.Handle("/admins", public(authHandler.SignupAdmin)).Methods(http.MethodPost)
	v1.Handle("/sessions", public(authHandler.Login)).Methods(http.MethodPost)
	v1.Handle("/sessions", authed(authHandler.Logout)).Methods(http.MethodDelete)
	v1.Handle("/users/{id}", authed(authHandler.GetUser)).Methods(http.MethodGet)
	v1.Handle("/users/{id}", authed(authHandler.UpdateUser)).Methods(http.MethodPut)
	v1.Handle("/users/{id}", authed(authHandler.DeleteUser)).Methods(http.MethodDelete)
	v1.Handle("/users/{id}/surveys", public(surveyHandler.ListByOwner)).Methods(http.MethodGet)

	// Surveys
	v1.Handle("/surveys", public(surveyHandler.List)).Methods(http.MethodGet)
	v1.Handle("/surveys", authed(surveyHandler.Create)).Methods(http.MethodPost)
	v1.Handle("/surveys/{id}", optional(surveyHandler.Get)).Methods(http.MethodGet)
	v1.Handle("/surveys/{id}", authed(surveyHandler.Delete)).Methods(http.MethodDelete)

	// Responses
	v1.Handle("/surveys/{id}/responses", public(responseHandler.Submit)).Methods(http.MethodPost)
	v1.Handle("/surveys/{id}/responses", authed(responseHandler.List)).Methods(http.MethodGet)
	v1.Handle("/surveys/{id}/results", authed(responseHandler.Results)).Methods(http.MethodGet)
	v1.Handle("/responses/{id}", authed(responseHandler.Delete)).Methods(http.MethodDelete)

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/surveys/{id}", wsHandler.SurveyFeed).Methods(http.MethodGet)

	return r
}

// chain wraps h so that mws[0] runs first
func chain(h http.Handler, mws ...mux.MiddlewareFunc) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// accessLog logs one line per request once it has been served
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.WithFields(log.Fields{
				"request_id": chimw.GetReqID(r.Context()),
				"remote":     r.RemoteAddr,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
			}).Info("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
