package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			utils.WriteJSONResponse(w, http.StatusServiceUnavailable, false, "db unreachable", utils.Fields{
				"db":   false,
				"time": time.Now(),
			})
			return
		}
		ok(w, "ok", utils.Fields{"db": true, "time": time.Now()})
	}
}
