package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"riddle-rush/internal/answers"
	"riddle-rush/internal/catalog"
	"riddle-rush/internal/domain"
	"riddle-rush/internal/game"
	"riddle-rush/internal/settings"
	"riddle-rush/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GameServer exposes the game core over a JSON HTTP API for the browser
// client: answer checking, category picks, the multi-player round flow and
// the statistics/leaderboard views.
type GameServer struct {
	store      *game.Store
	checker    *answers.Checker
	catalog    *catalog.Catalog
	aggregator *stats.Aggregator
	settings   *settings.Service
	logger     zerolog.Logger
}

func NewGameServer(
	store *game.Store,
	checker *answers.Checker,
	cat *catalog.Catalog,
	aggregator *stats.Aggregator,
	settingsSvc *settings.Service,
	logger zerolog.Logger,
) *GameServer {
	return &GameServer{
		store:      store,
		checker:    checker,
		catalog:    cat,
		aggregator: aggregator,
		settings:   settingsSvc,
		logger:     logger,
	}
}

// Routes registers all endpoints on the given mux.
func (s *GameServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/check-answer", s.handleCheckAnswer)
	mux.HandleFunc("GET /api/v1/category", s.handleRandomCategory)
	mux.HandleFunc("GET /api/v1/categories", s.handleCategories)
	mux.HandleFunc("POST /api/v1/session", s.handleNewSession)

	mux.HandleFunc("GET /api/v1/game", s.handleGameState)
	mux.HandleFunc("POST /api/v1/game/setup", s.handleSetupPlayers)
	mux.HandleFunc("POST /api/v1/game/answer", s.handleSubmitAnswer)
	mux.HandleFunc("POST /api/v1/game/score", s.handleAssignScore)
	mux.HandleFunc("POST /api/v1/game/round/complete", s.handleCompleteRound)
	mux.HandleFunc("POST /api/v1/game/round/next", s.handleNextRound)
	mux.HandleFunc("POST /api/v1/game/complete", s.handleCompleteGame)
	mux.HandleFunc("POST /api/v1/game/abandon", s.handleAbandonGame)

	mux.HandleFunc("GET /api/v1/statistics", s.handleStatistics)
	mux.HandleFunc("GET /api/v1/badges", s.handleBadges)
	mux.HandleFunc("GET /api/v1/leaderboard", s.handleLeaderboard)

	mux.HandleFunc("GET /api/v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", s.handlePutSettings)
}

type checkAnswerRequest struct {
	SearchWord string `json:"searchWord"`
	Letter     string `json:"letter"`
	Term       string `json:"term"`
}

func (s *GameServer) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SearchWord == "" || req.Letter == "" || req.Term == "" {
		s.writeError(w, http.StatusBadRequest, "missing required fields: searchWord, letter, term")
		return
	}

	result, err := s.checker.CheckAnswer(r.Context(), req.SearchWord, req.Letter, req.Term)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCategoryNotFound):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, answers.ErrProviderNotImplemented):
			s.writeError(w, http.StatusNotImplemented, err.Error())
		case errors.Is(err, answers.ErrUnknownProvider):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error().Err(err).Msg("answer check failed")
			s.writeError(w, http.StatusInternalServerError, "answer check failed")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *GameServer) handleRandomCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.catalog.RandomCategory()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to pick category")
		s.writeError(w, http.StatusInternalServerError, "failed to pick category")
		return
	}
	category.Letter = catalog.RandomLetter()
	s.writeJSON(w, http.StatusOK, category)
}

func (s *GameServer) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load categories")
		s.writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *GameServer) handleNewSession(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = "default-user"
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": uuid.NewString(),
		"userId":    userID,
		"createdAt": time.Now().UnixMilli(),
	})
}

type gameStateResponse struct {
	Session             *domain.GameSession        `json:"session"`
	CurrentPlayerTurn   *domain.Player             `json:"currentPlayerTurn,omitempty"`
	AllPlayersSubmitted bool                       `json:"allPlayersSubmitted"`
	Leaderboard         []domain.LeaderboardPlayer `json:"leaderboard,omitempty"`
}

func (s *GameServer) handleGameState(w http.ResponseWriter, r *http.Request) {
	session := s.store.CurrentSession()
	if session == nil {
		s.writeError(w, http.StatusNotFound, "no active session")
		return
	}
	s.writeJSON(w, http.StatusOK, gameStateResponse{
		Session:             session,
		CurrentPlayerTurn:   s.store.CurrentPlayerTurn(),
		AllPlayersSubmitted: s.store.AllPlayersSubmitted(),
		Leaderboard:         s.store.Leaderboard(),
	})
}

type setupPlayersRequest struct {
	PlayerNames []string `json:"playerNames"`
	GameName    string   `json:"gameName,omitempty"`
	Letter      string   `json:"letter,omitempty"`
}

func (s *GameServer) handleSetupPlayers(w http.ResponseWriter, r *http.Request) {
	var req setupPlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.store.SetupPlayers(r.Context(), req.PlayerNames, req.GameName, req.Letter)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

type playerActionRequest struct {
	PlayerID string `json:"playerId"`
	Answer   string `json:"answer,omitempty"`
	Points   int    `json:"points,omitempty"`
}

func (s *GameServer) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req playerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		s.writeError(w, http.StatusBadRequest, "playerId is required")
		return
	}
	if err := s.store.SubmitPlayerAnswer(r.Context(), req.PlayerID, req.Answer); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGameState(w)
}

func (s *GameServer) handleAssignScore(w http.ResponseWriter, r *http.Request) {
	var req playerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		s.writeError(w, http.StatusBadRequest, "playerId is required")
		return
	}
	if err := s.store.AssignPlayerScore(r.Context(), req.PlayerID, req.Points); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGameState(w)
}

func (s *GameServer) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	if err := s.store.CompleteRound(r.Context()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGameState(w)
}

type nextRoundRequest struct {
	CategoryID int    `json:"categoryId,omitempty"`
	Letter     string `json:"letter,omitempty"`
}

func (s *GameServer) handleNextRound(w http.ResponseWriter, r *http.Request) {
	var req nextRoundRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var category *domain.Category
	if req.CategoryID != 0 {
		picked, err := s.catalog.CategoryByID(req.CategoryID)
		if err != nil {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		category = picked
	}

	if err := s.store.StartNextRound(r.Context(), category, req.Letter); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGameState(w)
}

func (s *GameServer) handleCompleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.CompleteGame(r.Context()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGameState(w)
}

func (s *GameServer) handleAbandonGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.AbandonGame(r.Context()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"abandoned": true})
}

func (s *GameServer) handleStatistics(w http.ResponseWriter, r *http.Request) {
	statistics, err := s.aggregator.GetOrInit(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load statistics")
		s.writeError(w, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	s.writeJSON(w, http.StatusOK, statistics)
}

func (s *GameServer) handleBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.aggregator.Badges(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to evaluate badges")
		s.writeError(w, http.StatusInternalServerError, "failed to evaluate badges")
		return
	}
	s.writeJSON(w, http.StatusOK, badges)
}

type leaderboardEntryResponse struct {
	domain.LeaderboardEntry
	DurationDisplay string `json:"durationDisplay"`
}

func (s *GameServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := s.aggregator.Leaderboard(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load leaderboard")
		s.writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	resp := make([]leaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, leaderboardEntryResponse{
			LeaderboardEntry: entry,
			DurationDisplay:  game.FormatDuration(entry.Duration),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *GameServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.settings.Get())
}

func (s *GameServer) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.GameSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.settings.Update(r.Context(), func(gs *domain.GameSettings) { *gs = req })
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *GameServer) writeGameState(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusOK, gameStateResponse{
		Session:             s.store.CurrentSession(),
		CurrentPlayerTurn:   s.store.CurrentPlayerTurn(),
		AllPlayersSubmitted: s.store.AllPlayersSubmitted(),
		Leaderboard:         s.store.Leaderboard(),
	})
}

func (s *GameServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *GameServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
