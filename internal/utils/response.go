package utils

import (
	"encoding/json"
	"net/http"
)

// Fields are merged into the top level of a JSON response next to success
// and message, e.g. {"success":true,"token":"...","user":{...}}.
type Fields map[string]any

func WriteJSONResponse(w http.ResponseWriter, status int, success bool, message string, fields Fields) {
	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = success
	if message != "" {
		body["message"] = message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
