package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/playterritory/conquest/internal/game"
)

type playerSession struct {
	PlayerID string
	Name     string
	Team     game.Team
}

var errNoSession = errors.New("no valid session")

func playerFromRequest(r *http.Request) (playerSession, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return playerSession{}, errNoSession
	}
	return worldStore(r).PlayerFromToken(r.Context(), token)
}
