package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"timebet/internal/database"
	"timebet/internal/game"
	"timebet/pkg/config"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type BalanceResponse struct {
	UserID       string `json:"user_id"`
	Balance      int64  `json:"balance"`
	Withdrawable int64  `json:"withdrawable"`
}

type ThrowRequest struct {
	Percent int64 `json:"percent"`
}

type BetResponse struct {
	Team   string `json:"team"`
	Amount int64  `json:"amount"`
	Points int64  `json:"points"`
}

type RateResponse struct {
	Units  int64 `json:"units"`
	Points int64 `json:"points"`
}

var engine *game.Engine

func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing API Key"})
			return
		}

		userID, err := database.GetUserByAPIKey(key)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid API Key"})
			return
		}

		// Add UserID to header for next handler (simple context passing)
		r.Header.Set("X-User-ID", userID)
		next(w, r)
	}
}

func writeEngineErr(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch game.KindOf(err) {
	case game.KindAuthorization:
		status = http.StatusForbidden
	case game.KindBanned:
		status = http.StatusForbidden
	case game.KindState:
		status = http.StatusConflict
	case game.KindUnknown:
		status = http.StatusInternalServerError
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

// HandleGameStatus is public: the same snapshot !gamestatus shows.
func HandleGameStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	json.NewEncoder(w).Encode(engine.Status())
}

func HandleTeamBets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/v1/game/teams/")
	team, err := game.ParseTeam(name)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "unknown team"})
		return
	}

	json.NewEncoder(w).Encode(engine.TeamBets(team))
}

func HandleRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	units := int64(1)
	if v := r.URL.Query().Get("units"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			units = parsed
		}
	}

	json.NewEncoder(w).Encode(RateResponse{Units: units, Points: engine.RatePreview(units)})
}

func HandleBans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	banned := engine.BannedPlayers()
	if banned == nil {
		banned = []string{}
	}
	json.NewEncoder(w).Encode(banned)
}

func HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("X-User-ID")
	json.NewEncoder(w).Encode(BalanceResponse{
		UserID:       userID,
		Balance:      database.GetBalance(userID),
		Withdrawable: engine.Withdrawable(userID),
	})
}

// HandleMyBet returns the caller's bet records, one per team they back.
func HandleMyBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("X-User-ID")
	out := []BetResponse{}
	for _, team := range []game.Team{game.TeamA, game.TeamB} {
		if rec, ok := engine.UserBet(userID, team); ok {
			out = append(out, BetResponse{Team: team.String(), Amount: rec.Amount, Points: rec.Points})
		}
	}
	json.NewEncoder(w).Encode(out)
}

func HandleThrow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("X-User-ID")

	var req ThrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid Request Body"})
		return
	}

	if err := engine.ThrowPoints(userID, req.Percent); err != nil {
		writeEngineErr(w, err)
		return
	}

	json.NewEncoder(w).Encode(engine.CanThrow(userID))
}

func HandleCanThrow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	json.NewEncoder(w).Encode(engine.CanThrow(r.Header.Get("X-User-ID")))
}

func Start(e *game.Engine) {
	engine = e

	mux := http.NewServeMux()

	// Public game endpoints
	mux.HandleFunc("/api/v1/game/status", HandleGameStatus)
	mux.HandleFunc("/api/v1/game/teams/", HandleTeamBets)
	mux.HandleFunc("/api/v1/game/rate", HandleRate)
	mux.HandleFunc("/api/v1/game/bans", HandleBans)

	// Key-authenticated player endpoints
	mux.HandleFunc("/api/v1/me", AuthMiddleware(HandleMe))
	mux.HandleFunc("/api/v1/me/bet", AuthMiddleware(HandleMyBet))
	mux.HandleFunc("/api/v1/me/throw", AuthMiddleware(HandleThrow))
	mux.HandleFunc("/api/v1/me/canthrow", AuthMiddleware(HandleCanThrow))

	port := config.Bot.ApiPort
	if port == "" {
		port = ":8080"
	}

	log.Printf("Starting API Server on %s", port)
	if err := http.ListenAndServe(port, mux); err != nil {
		log.Fatal("API Server failed:", err)
	}
}
