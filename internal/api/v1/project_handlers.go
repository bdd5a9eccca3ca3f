package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

type ProjectHandler struct {
	responder
	projects *service.ProjectService
}

func NewProjectHandler(rs responder, projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{responder: rs, projects: projects}
}

// projectReq is shared by create and update; absent fields stay nil.
type projectReq struct {
	Title             *string   `json:"title" validate:"omitempty,max=200"`
	Description       *string   `json:"description" validate:"omitempty,max=5000"`
	NGOID             *string   `json:"ngoId"`
	Status            *string   `json:"status" validate:"omitempty,oneof=active completed on-hold"`
	Progress          *flexInt  `json:"progress"`
	StartDate         *flexDate `json:"startDate"`
	EndDate           *flexDate `json:"endDate"`
	RequiredSkills    []string  `json:"requiredSkills"`
	Location          *string   `json:"location" validate:"omitempty,max=300"`
	MaxVolunteers     *flexInt  `json:"maxVolunteers"`
	CurrentVolunteers *flexInt  `json:"currentVolunteers"`
}

func (p *projectReq) input() service.ProjectInput {
	return service.ProjectInput{
		Title:             p.Title,
		Description:       p.Description,
		NGOID:             p.NGOID,
		Status:            p.Status,
		Progress:          p.Progress.intPtr(),
		StartDate:         p.StartDate.timePtr(),
		EndDate:           p.EndDate.timePtr(),
		RequiredSkills:    p.RequiredSkills,
		Location:          p.Location,
		MaxVolunteers:     p.MaxVolunteers.intPtr(),
		CurrentVolunteers: p.CurrentVolunteers.intPtr(),
	}
}

// GET /projects/ngo/{ngoId}
func (h *ProjectHandler) ListByNGO(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.ListByNGO(r.Context(), chi.URLParam(r, "ngoId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"projects": list})
}

// GET /projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"project": p})
}

// POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.projects.Create(r.Context(), auth.GetAccountFromCtx(r.Context()), req.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "", utils.Fields{"project": p})
}

// PUT /projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.projects.Update(r.Context(), auth.GetAccountFromCtx(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"project": p})
}

// DELETE /projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), auth.GetAccountFromCtx(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "Project deleted successfully", nil)
}
