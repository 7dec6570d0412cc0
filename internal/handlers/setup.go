package handlers

import (
	"fmt"
	"net/http"
	"time"

	"chatcore-backend/internal/hub"
	"chatcore-backend/internal/models"
	"chatcore-backend/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	playgroundValidator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger
var st *store.Store
var ws *hub.Hub
var validate = playgroundValidator.New()

func Setup(cfg *models.ConfigFile, _sugar *zap.SugaredLogger, _st *store.Store, _ws *hub.Hub) error {
	sugar = _sugar
	st = _st
	ws = _ws

	r := router(cfg.PrintHttpRequests)

	address := fmt.Sprintf("%s:%s", cfg.Address, cfg.Port)

	if cfg.TlsCert != "" && cfg.TlsKey != "" {
		return http.ListenAndServeTLS(address, cfg.TlsCert, cfg.TlsKey, r)
	}
	return http.ListenAndServe(address, r)
}

func router(printRequests bool) *chi.Mux {
	r := chi.NewRouter()

	if printRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/register", Register)
			r.Post("/login", Login)
			r.With(UserVerifier).Post("/logout", Logout)
			r.Post("/passwordReset/request", PasswordResetRequest)
			r.Post("/passwordReset/reset", PasswordReset)
			r.With(UserVerifier).Get("/isLoggedIn", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		})

		api.Route("/user", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetUserInfo)
			r.Post("/update", UpdateUserInfo)
		})

		api.Route("/channel", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateChannel)
			r.Get("/fetch", GetChannel)
			r.Post("/join", JoinChannel)
			r.Post("/leave", LeaveChannel)
			r.Post("/addOwner", AddChannelOwner)
			r.Post("/removeOwner", RemoveChannelOwner)
		})

		api.Route("/message", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateMessage)
			r.Get("/fetch", GetMessageList)
			r.Post("/pin", PinMessage)
			r.Post("/unpin", UnpinMessage)
			r.Post("/react", ReactMessage)
			r.Post("/unreact", UnreactMessage)
		})

		api.Route("/standup", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/start", StartStandup)
			r.Post("/send", SendStandup)
			r.Get("/active", GetStandupStatus)
		})
	})

	r.With(UserVerifier).Get("/ws", HandleWebSocket)

	return r
}
