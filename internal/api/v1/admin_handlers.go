package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

type AdminHandler struct {
	responder
	dir *service.DirectoryService
}

func NewAdminHandler(rs responder, dir *service.DirectoryService) *AdminHandler {
	return &AdminHandler{responder: rs, dir: dir}
}

// GET /admin/pending-approvals
func (h *AdminHandler) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.PendingApprovals(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"users": profiles(list), "count": len(list)})
}

// GET /admin/statistics
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dir.Statistics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"statistics": stats})
}

type setActiveReq struct {
	Active *bool `json:"active" validate:"required"`
}

// POST /admin/users/{id}/active
func (h *AdminHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveReq
	if !h.decode(w, r, &req) {
		return
	}
	caller := auth.GetAccountFromCtx(r.Context())
	a, err := h.dir.SetAccountActive(r.Context(), caller, chi.URLParam(r, "id"), *req.Active)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "User deactivated"
	if a.Active {
		msg = "User activated"
	}
	view := a.ApprovalView()
	view["isActive"] = a.Active
	ok(w, msg, utils.Fields{"user": view})
}
