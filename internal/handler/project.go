package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/service"
)

// ProjectHandler обрабатывает эндпоинты проектов и назначения команд
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler создает новый ProjectHandler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProjectRequest представляет тело запроса для создания проекта
type CreateProjectRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Budget      *decimal.Decimal `json:"budget"`
	Currency    string           `json:"currency"`
}

// UpdateProjectRequest представляет частичное обновление; отсутствующие поля не меняются
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Budget      *decimal.Decimal      `json:"budget"`
	ClearBudget bool                  `json:"clear_budget"`
	Currency    *string               `json:"currency"`
	Status      *domain.ProjectStatus `json:"status"`
}

// AssignTeamRequest представляет тело запроса для назначения команды
type AssignTeamRequest struct {
	TeamID string `json:"team_id"`
}

// List обрабатывает GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, projects)
}

// Create обрабатывает POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		Currency:    req.Currency,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, project)
}

// Get обрабатывает GET /projects/{projectID}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, project)
}

// Update обрабатывает PATCH /projects/{projectID}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), userID, chi.URLParam(r, "projectID"), domain.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		ClearBudget: req.ClearBudget,
		Currency:    req.Currency,
		Status:      req.Status,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, project)
}

// Delete обрабатывает DELETE /projects/{projectID}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), userID, chi.URLParam(r, "projectID")); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}

// Teams обрабатывает GET /projects/{projectID}/teams
func (h *ProjectHandler) Teams(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	teams, err := h.projectService.AssignedTeams(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}

// AssignTeam обрабатывает POST /projects/{projectID}/teams
func (h *ProjectHandler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req AssignTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	teams, err := h.projectService.AssignTeam(r.Context(), userID, chi.URLParam(r, "projectID"), req.TeamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, teams)
}

// UnassignTeam обрабатывает DELETE /projects/{projectID}/teams/{teamID}
func (h *ProjectHandler) UnassignTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	err := h.projectService.UnassignTeam(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "teamID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}

// AvailableTeams обрабатывает GET /projects/{projectID}/available-teams
func (h *ProjectHandler) AvailableTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	teams, err := h.projectService.AvailableTeams(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}
