package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

type NGOHandler struct {
	responder
	dir *service.DirectoryService
}

func NewNGOHandler(rs responder, dir *service.DirectoryService) *NGOHandler {
	return &NGOHandler{responder: rs, dir: dir}
}

func profiles(list []*models.Account) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, a := range list {
		out = append(out, a.Profile())
	}
	return out
}

// GET /ngo/all
func (h *NGOHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.ApprovedNGOs(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"ngos": profiles(list)})
}

// GET /ngo/stats
func (h *NGOHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dir.NGOStats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"stats": stats})
}

// GET /ngo/{id}
func (h *NGOHandler) Get(w http.ResponseWriter, r *http.Request) {
	ngo, err := h.dir.GetNGO(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"ngo": ngo.Profile()})
}

// POST /ngo/approve/{id} (admin)
func (h *NGOHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ngo, err := h.dir.ApproveNGO(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "NGO approved successfully", utils.Fields{"ngo": ngo.Profile()})
}
