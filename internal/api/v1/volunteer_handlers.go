package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

type VolunteerHandler struct {
	responder
	dir *service.DirectoryService
}

func NewVolunteerHandler(rs responder, dir *service.DirectoryService) *VolunteerHandler {
	return &VolunteerHandler{responder: rs, dir: dir}
}

type volunteerDecisionReq struct {
	VolunteerID string `json:"volunteerId"`
	NGOID       string `json:"ngoId"`
}

// GET /volunteers/ngo/{ngoId}
func (h *VolunteerHandler) ListByNGO(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.VolunteersByNGO(r.Context(), chi.URLParam(r, "ngoId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "", utils.Fields{"volunteers": profiles(list)})
}

// GET /volunteers/{id}
func (h *VolunteerHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, ngo, err := h.dir.GetVolunteer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := v.Profile()
	if ngo != nil {
		summary := map[string]any{"_id": ngo.ID, "name": ngo.Name}
		if ngo.NGO != nil {
			summary["organization"] = ngo.NGO.Organization
		}
		data["ngo"] = summary
	}
	ok(w, "", utils.Fields{"data": data})
}

// POST /volunteers/approve
func (h *VolunteerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// POST /volunteers/reject
func (h *VolunteerHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *VolunteerHandler) decide(w http.ResponseWriter, r *http.Request, approved bool) {
	var req volunteerDecisionReq
	if !h.decode(w, r, &req) {
		return
	}
	caller := auth.GetAccountFromCtx(r.Context())
	v, err := h.dir.SetVolunteerApproval(r.Context(), caller, req.VolunteerID, req.NGOID, approved)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "Volunteer approved successfully"
	if !approved {
		msg = "Volunteer rejected successfully"
	}
	ok(w, msg, utils.Fields{"volunteer": v.ApprovalView()})
}
