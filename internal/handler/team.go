package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/payteams/internal/service"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeamRequest представляет тело запроса для создания команды
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberRequest представляет тело запроса для добавления участника
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// List обрабатывает GET /teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}

// Create обрабатывает POST /teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, team)
}

// Get обрабатывает GET /teams/{teamID}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), userID, chi.URLParam(r, "teamID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, team)
}

// Delete обрабатывает DELETE /teams/{teamID}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), userID, chi.URLParam(r, "teamID")); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}

// AddMember обрабатывает POST /teams/{teamID}/members
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.AddMember(r.Context(), userID, chi.URLParam(r, "teamID"), req.UserID, req.Role)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, team)
}

// RemoveMember обрабатывает DELETE /teams/{teamID}/members/{userID}
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	err := h.teamService.RemoveMember(r.Context(), userID, chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}

// AvailableUsers обрабатывает GET /teams/{teamID}/available-users
func (h *TeamHandler) AvailableUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	users, err := h.teamService.AvailableUsers(r.Context(), userID, chi.URLParam(r, "teamID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, users)
}
