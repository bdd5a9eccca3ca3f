package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

// responder is embedded by every handler for decoding and error output.
type responder struct {
	log *zap.Logger
	// debug adds the underlying error and stack to 500 responses.
	debug bool
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := service.AsError(err)
	fields := utils.Fields{}
	if len(e.Details) > 0 {
		fields["details"] = e.Details
	}
	if e.Kind == service.KindInternal {
		rs.log.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(e.Err))
		if rs.debug && e.Err != nil {
			fields["error"] = e.Err.Error()
			fields["stack"] = fmt.Sprintf("%+v", e.Err)
		}
	}
	utils.WriteJSONResponse(w, e.Kind.HTTPStatus(), false, e.Message, fields)
}

// decode reads a JSON body into req and runs the boundary validators. It
// writes the 400 response itself and reports false on failure.
func (rs responder) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "Invalid request body", utils.Fields{
			"details": map[string]string{"body": err.Error()},
		})
		return false
	}
	if details := validateRequest(req); details != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "Validation failed", utils.Fields{"details": details})
		return false
	}
	return true
}

func ok(w http.ResponseWriter, message string, fields utils.Fields) {
	utils.WriteJSONResponse(w, http.StatusOK, true, message, fields)
}
