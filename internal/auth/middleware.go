package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

type ctxKey string

const ctxAccountKey ctxKey = "currentAccount"

// CookieName is the session cookie set at login.
const CookieName = "refreshToken"

func GetAccountFromCtx(ctx context.Context) *models.Account {
	if a, ok := ctx.Value(ctxAccountKey).(*models.Account); ok {
		return a
	}
	return nil
}

// WithAccount stores a in ctx; handlers read it back with GetAccountFromCtx.
func WithAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, ctxAccountKey, a)
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if authz := r.Header.Get("Authorization"); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return parts[1], true
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

// AuthMiddleware validates the bearer JWT (or session cookie), loads the
// account, ensures it may still log in, and sets it in context.
func AuthMiddleware(accounts store.AccountStore, tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := tokenFromRequest(r)
			if !ok {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "missing authorization", nil)
				return
			}
			claims, err := tokens.ParseSession(raw)
			if err != nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid token", nil)
				return
			}
			a, err := accounts.GetAccountByID(r.Context(), claims.UserID)
			if err != nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "user not found", nil)
				return
			}
			if !a.ReadyForLogin() {
				utils.WriteJSONResponse(w, http.StatusForbidden, false, "account not active or approved", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), a)))
		})
	}
}

// RoleMiddleware allows multiple allowed roles; usage: RoleMiddleware(models.RoleAdmin, models.RoleNGO)
func RoleMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	set := map[models.Role]struct{}{}
	for _, r := range allowedRoles {
		set[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := GetAccountFromCtx(r.Context())
			if a == nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil)
				return
			}
			if _, ok := set[a.Role]; !ok {
				utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
