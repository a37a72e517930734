package routes

import (
	"net/http"

	"github.com/Dosada05/match-tagger/handlers"
	"github.com/Dosada05/match-tagger/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/match-tagger/docs"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Teams       *handlers.TeamHandler
	ActionTypes *handlers.ActionTypeHandler
	Match       *handlers.MatchHandler
	Archive     *handlers.ArchiveHandler
	WebSocket   *handlers.WebSocketHandler
}

// SetupRoutes регистрирует все маршруты. Изменяющие запросы закрыты JWT, если задан jwtSecret.
func SetupRoutes(router chi.Router, h Handlers, jwtSecret string, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws", h.WebSocket.ServeWs)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	router.Post("/auth/login", h.Auth.Login)

	auth := middleware.Authenticate(jwtSecret)

	// Чтение открыто
	router.Get("/teams", h.Teams.ListTeams)
	router.Get("/teams/{teamID}", h.Teams.GetTeam)
	router.Get("/action-types", h.ActionTypes.ListActionTypes)
	router.Get("/match", h.Match.GetMatch)
	router.Get("/match/stats", h.Match.Stats)
	router.Get("/match/heatmap", h.Match.HeatMap)
	router.Get("/games", h.Archive.ListGames)
	router.Get("/games/{gameID}", h.Archive.GetGame)
	router.Get("/games/{gameID}/stats", h.Archive.Stats)
	router.Get("/games/{gameID}/heatmap", h.Archive.HeatMap)
	router.Get("/games/{gameID}/export.txt", h.Archive.ExportText)
	router.Get("/games/{gameID}/heatmap.png", h.Archive.HeatMapPNG)

	router.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/auth/me", h.Auth.Me)

		r.Post("/teams", h.Teams.CreateTeam)
		r.Put("/teams/{teamID}", h.Teams.UpdateTeam)
		r.Delete("/teams/{teamID}", h.Teams.DeleteTeam)
		r.Post("/teams/{teamID}/players", h.Teams.AddPlayer)
		r.Put("/teams/{teamID}/players/{playerID}", h.Teams.UpdatePlayer)
		r.Delete("/teams/{teamID}/players/{playerID}", h.Teams.DeletePlayer)
		r.Post("/teams/{teamID}/import", h.Teams.ImportPlayers)

		r.Post("/action-types", h.ActionTypes.CreateActionType)
		r.Put("/action-types/{actionTypeID}", h.ActionTypes.UpdateActionType)
		r.Delete("/action-types/{actionTypeID}", h.ActionTypes.DeleteActionType)

		r.Post("/match/start", h.Match.StartMatch)
		r.Post("/match/possession", h.Match.SetPossession)
		r.Post("/match/zone-tap", h.Match.ZoneTap)
		r.Post("/match/actions", h.Match.RecordAction)
		r.Post("/match/actions/pending", h.Match.BeginAction)
		r.Post("/match/actions/pending/complete", h.Match.CompleteAction)
		r.Delete("/match/actions/pending", h.Match.CancelAction)
		r.Post("/match/tick", h.Match.Tick)
		r.Post("/match/toggle", h.Match.TogglePlay)
		r.Post("/match/end", h.Match.EndMatch)
		r.Delete("/match", h.Match.AbandonMatch)

		r.Delete("/games/{gameID}", h.Archive.DeleteGame)
		r.Post("/games/{gameID}/resume", h.Archive.ResumeGame)
		r.Patch("/games/{gameID}/actions/{actionID}", h.Archive.EditAction)
		r.Delete("/games/{gameID}/actions/{actionID}", h.Archive.DeleteAction)
		r.Post("/games/{gameID}/export", h.Archive.Export)

		r.Delete("/data", h.Archive.ClearAllData)
	})
}
