package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	advisorHandler "github.com/rahhal-app/rahhal/backend/internal/handler/advisor"
	chatHandler "github.com/rahhal-app/rahhal/backend/internal/handler/chat"
	middlewarePkg "github.com/rahhal-app/rahhal/backend/internal/middleware"
	advisorService "github.com/rahhal-app/rahhal/backend/internal/service/advisor"
	chatService "github.com/rahhal-app/rahhal/backend/internal/service/chat"
	"github.com/rahhal-app/rahhal/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. window is the number of
// trailing transcript messages handed to the advisor as context on
// follow-up chat.
func NewRouter(advisorSvc *advisorService.Service, chatSvc *chatService.Service, window int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	sessionHandler := chatHandler.New(chatSvc)
	travelHandler := advisorHandler.New(advisorSvc, chatSvc, window)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.RegisterRoutes(api)
		travelHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
