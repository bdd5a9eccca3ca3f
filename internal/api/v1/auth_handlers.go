package v1

import (
	"net/http"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
)

type AuthHandler struct {
	responder
	accounts     *service.AccountService
	secureCookie bool
}

func NewAuthHandler(rs responder, accounts *service.AccountService, secureCookie bool) *AuthHandler {
	return &AuthHandler{responder: rs, accounts: accounts, secureCookie: secureCookie}
}

type registerReq struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,password"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	UserType string `json:"userType"`
	Phone    string `json:"phone" validate:"omitempty,len=10,numeric"`
	Address  string `json:"address" validate:"omitempty,max=500"`

	Interests []string `json:"interests"`
	Skills    []string `json:"skills"`
	NGOID     string   `json:"ngoId"`

	Organization       string `json:"organization"`
	RegistrationNumber string `json:"registrationNumber"`
	Website            string `json:"website" validate:"omitempty,url"`

	Department  string   `json:"department"`
	Designation string   `json:"designation"`
	Experience  *flexInt `json:"experience"`
}

type loginReq struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

type approveUserReq struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type forgotPasswordReq struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type resetPasswordReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword" validate:"omitempty,password"`
}

type googleReq struct {
	Code string `json:"code"`
}

// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !h.decode(w, r, &req) {
		return
	}
	a, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Email:              req.Email,
		Password:           req.Password,
		Name:               req.Name,
		UserType:           req.UserType,
		Phone:              req.Phone,
		Address:            req.Address,
		Interests:          req.Interests,
		Skills:             req.Skills,
		NGOID:              req.NGOID,
		Organization:       req.Organization,
		RegistrationNumber: req.RegistrationNumber,
		Website:            req.Website,
		Department:         req.Department,
		Designation:        req.Designation,
		Experience:         req.Experience.intPtr(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "Registration successful. Please wait for approval."
	if a.Approved {
		msg = "Registration successful. You can now log in."
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, msg, utils.Fields{
		"user": a.Summary(),
	})
}

// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeSession(w, res)
}

// POST /auth/google exchanges an authorization code for a session.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleReq
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.accounts.LoginWithGoogle(r.Context(), req.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeSession(w, res)
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, res *service.LoginResult) {
	ttl := h.accounts.Tokens().TTL()
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    res.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
	})
	ok(w, "", utils.Fields{
		"token": res.Token,
		"user":  res.Account.LoginView(),
	})
}

// POST /logout clears the session cookie. Tokens are stateless, so a bearer
// token stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	ok(w, "Logged out successfully", nil)
}

// POST /approve-user (admin)
func (h *AuthHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	var req approveUserReq
	if !h.decode(w, r, &req) {
		return
	}
	a, err := h.accounts.Approve(r.Context(), req.Email, req.UserType)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "User approved successfully", utils.Fields{"user": a.ApprovalView()})
}

// POST /forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordReq
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "Password reset email sent successfully", nil)
}

// POST /reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordReq
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.accounts.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w, "Password reset successfully", nil)
}
