package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Territory Conquest API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB, deps.Redis))

	r.Route("/api", func(r chi.Router) {
		r.Use(storeMiddleware(deps.Store))

		r.Post("/join", handleJoin(deps.Broker))
		r.Get("/game/state", handleGameState(deps.Sessions, deps.TerritoryTTL))
		r.Get("/territories", handleTerritories())
		r.Get("/stats", handleStats())
		r.Get("/leaderboard", handleLeaderboard())
		r.Get("/players", handlePlayers(deps.Presence))
		r.Get("/events", handleEvents(deps.Broker))

		r.Post("/trace/start", handleTraceStart(deps.Sessions))
		r.Post("/trace/stop", handleTraceStop(deps.Sessions))
		r.Post("/position", handlePosition(logger, deps.Sessions, deps.Presence, deps.Broker, deps.TerritoryTTL))

		r.Post("/admin/login", handleAdminLogin())
		r.Post("/admin/logout", handleAdminLogout())
		r.Get("/admin/me", handleAdminMe())
		r.With(adminAuthMiddleware()).Post("/admin/reset", handleAdminReset(logger, deps.Broker, deps.Sessions))
		r.With(adminAuthMiddleware()).Get("/admin/players", handleAdminPlayers())
	})

	r.With(storeMiddleware(deps.Store)).
		Get("/ws/position", handleWSPosition(logger, deps.Sessions, deps.Presence, deps.Broker, deps.TerritoryTTL))

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
