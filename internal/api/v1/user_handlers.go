package v1

import (
	"bytes"
	"io"
	"net/http"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

const maxPictureBytes = 5 << 20

type UserHandler struct {
	responder
	profiles *service.ProfileService
}

func NewUserHandler(rs responder, profiles *service.ProfileService) *UserHandler {
	return &UserHandler{responder: rs, profiles: profiles}
}

// GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	current := auth.GetAccountFromCtx(r.Context())
	ok(w, "", utils.Fields{"user": h.profiles.View(r.Context(), current)})
}

// POST /users/me/profile-picture (multipart, field "file", max 5MB)
func (h *UserHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	current := auth.GetAccountFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxPictureBytes+(1<<20))
	if err := r.ParseMultipartForm(maxPictureBytes); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "file too large or invalid form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing file field", nil)
		return
	}
	defer file.Close()
	if header.Size > maxPictureBytes {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "file too large or invalid form", nil)
		return
	}

	// sniff rather than trust the client's content type
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	head = head[:n]
	ext, known := utils.ImageExtension(http.DetectContentType(head))
	if !known {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "only PNG, JPEG, GIF or WebP images are allowed", nil)
		return
	}

	// the stored name comes from the sniffed type, never the client's filename
	url, err := h.profiles.SetPicture(r.Context(), current, "picture"+ext, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "profile picture uploaded", utils.Fields{"url": url})
}

// DELETE /users/me/profile-picture
func (h *UserHandler) DeletePicture(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.DeletePicture(r.Context(), auth.GetAccountFromCtx(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "profile picture deleted", nil)
}
