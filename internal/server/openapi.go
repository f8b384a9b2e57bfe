package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Territory Conquest API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the territory conquest game: trace loops, claim territory, conquer opponents.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/join")
	postJoin.SetSummary("Join the game")
	postJoin.SetDescription("Creates a player on the given team (defaults to green) and returns a session token.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postJoin)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns active territories, the player's profile, archived paths and stats. Requires Bearer token.")
	getState.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// GET /api/territories
	getTerritories, _ := r.NewOperationContext(http.MethodGet, "/api/territories")
	getTerritories.SetSummary("List active territories")
	getTerritories.AddRespStructure(TerritoriesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getTerritories)

	// GET /api/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/api/stats")
	getStats.SetSummary("Per-team stats")
	getStats.SetDescription("Conquered, lost, expired and net area per team, plus overlap-free coverage.")
	getStats.AddRespStructure(StatsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStats)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Players ordered by score.")
	getLeaderboard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	// GET /api/players
	getPlayers, _ := r.NewOperationContext(http.MethodGet, "/api/players")
	getPlayers.SetSummary("Online players")
	getPlayers.SetDescription("All players with live positions where presence data is fresh.")
	getPlayers.AddRespStructure(PlayersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPlayers)

	// POST /api/trace/start
	postTraceStart, _ := r.NewOperationContext(http.MethodPost, "/api/trace/start")
	postTraceStart.SetSummary("Start tracing")
	postTraceStart.SetDescription("Begins a new trace, optionally seeded with the current position. Requires Bearer token.")
	postTraceStart.AddReqStructure(TraceStartRequest{})
	postTraceStart.AddRespStructure(TraceStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postTraceStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postTraceStart)

	// POST /api/trace/stop
	postTraceStop, _ := r.NewOperationContext(http.MethodPost, "/api/trace/stop")
	postTraceStop.SetSummary("Stop tracing")
	postTraceStop.SetDescription("Ends the trace and archives it as a path segment. Requires Bearer token.")
	postTraceStop.AddRespStructure(TraceStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postTraceStop.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postTraceStop)

	// POST /api/position
	postPosition, _ := r.NewOperationContext(http.MethodPost, "/api/position")
	postPosition.SetSummary("Feed a position sample")
	postPosition.SetDescription("REST fallback for the websocket: feeds one position; a closed loop claims territory inline. Requires Bearer token.")
	postPosition.AddReqStructure(PositionRequest{})
	postPosition.AddRespStructure(PositionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postPosition.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postPosition.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postPosition)

	// GET /ws/position
	getWSPosition, _ := r.NewOperationContext(http.MethodGet, "/ws/position")
	getWSPosition.SetSummary("Position websocket")
	getWSPosition.SetDescription("Upgrades to a websocket feeding the player's trace. Pass token as query parameter.")
	getWSPosition.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWSPosition)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE world feed")
	getEvents.SetDescription("Server-Sent Events stream of world changes. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// POST /api/admin/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/admin/reset")
	postReset.SetSummary("Reset the world")
	postReset.SetDescription("Wipes territories, history and scores; keeps accounts. Requires admin_session cookie.")
	postReset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postReset)

	// GET /api/admin/players
	getAdminPlayers, _ := r.NewOperationContext(http.MethodGet, "/api/admin/players")
	getAdminPlayers.SetSummary("List players")
	getAdminPlayers.SetDescription("Full player roster with scores. Requires admin_session cookie.")
	getAdminPlayers.AddRespStructure(PlayersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getAdminPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getAdminPlayers)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
