package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/campushub/internal/service"
)

// MembersHandler serves the contribution leaderboard.
type MembersHandler struct {
	leaderboard *service.LeaderboardService
	render      *Renderer
	logger      *slog.Logger
}

func NewMembersHandler(leaderboard *service.LeaderboardService, render *Renderer, logger *slog.Logger) *MembersHandler {
	return &MembersHandler{
		leaderboard: leaderboard,
		render:      render,
		logger:      logger,
	}
}

type membersPage struct {
	basePage
	Board *service.Leaderboard
}

// HandleMembers renders every member ranked by contributions, with the
// top-contributors strip above the full table.
//
// HTTP: GET /members/
func (h *MembersHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboard.Compute(r.Context())
	if err != nil {
		h.logger.Error("failed to compute leaderboard", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.render(w, "members.html", membersPage{
		basePage: h.render.base(r.Context(), "Members", "members"),
		Board:    board,
	})
}
