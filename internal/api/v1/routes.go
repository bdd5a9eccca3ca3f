package v1

import (
	"github.com/go-chi/chi/v5"
	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/config"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"go.uber.org/zap"
)

// Services are the application services the handlers call into.
type Services struct {
	Accounts  *service.AccountService
	Directory *service.DirectoryService
	Projects  *service.ProjectService
	Profiles  *service.ProfileService
}

type API struct {
	cfg    *config.Config
	router *chi.Mux
	store  *store.Store
	svc    Services
	log    *zap.Logger
}

func NewAPI(cfg *config.Config, s *store.Store, svc Services, logger *zap.Logger) *API {
	api := &API{cfg: cfg, router: chi.NewRouter(), store: s, svc: svc, log: logger}
	api.routes()
	return api
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

func (a *API) routes() {
	rs := responder{log: a.log, debug: !a.cfg.IsProduction()}

	authH := NewAuthHandler(rs, a.svc.Accounts, a.cfg.IsProduction())
	ngoH := NewNGOHandler(rs, a.svc.Directory)
	volH := NewVolunteerHandler(rs, a.svc.Directory)
	projH := NewProjectHandler(rs, a.svc.Projects)
	adminH := NewAdminHandler(rs, a.svc.Directory)
	userH := NewUserHandler(rs, a.svc.Profiles)

	authn := auth.AuthMiddleware(a.store.Accounts, a.svc.Accounts.Tokens())
	adminOnly := auth.RoleMiddleware(models.RoleAdmin)

	r := a.router

	// account lifecycle
	r.Post("/register", authH.Register)
	r.Post("/login", authH.Login)
	r.Post("/logout", authH.Logout)
	r.Post("/forgot-password", authH.ForgotPassword)
	r.Post("/reset-password", authH.ResetPassword)
	r.Post("/auth/google", authH.GoogleSignIn)
	r.With(authn, adminOnly).Post("/approve-user", authH.ApproveUser)

	r.Route("/ngo", func(r chi.Router) {
		r.Get("/all", ngoH.ListApproved)
		r.Get("/stats", ngoH.Stats)
		r.Get("/{id}", ngoH.Get)
		r.With(authn, adminOnly).Post("/approve/{id}", ngoH.Approve)
	})

	// volunteer records carry contact details, so reads need a session too
	r.Route("/volunteers", func(r chi.Router) {
		r.Use(authn)
		r.Get("/ngo/{ngoId}", volH.ListByNGO)
		r.Get("/{id}", volH.Get)
		r.Group(func(r chi.Router) {
			r.Use(auth.RoleMiddleware(models.RoleNGO, models.RoleAdmin))
			r.Post("/approve", volH.Approve)
			r.Post("/reject", volH.Reject)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/ngo/{ngoId}", projH.ListByNGO)
		r.Get("/{id}", projH.Get)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Use(auth.RoleMiddleware(models.RoleNGO, models.RoleAdmin))
			r.Post("/", projH.Create)
			r.Put("/{id}", projH.Update)
			r.Delete("/{id}", projH.Delete)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authn)
		r.Use(adminOnly)
		r.Get("/pending-approvals", adminH.PendingApprovals)
		r.Get("/statistics", adminH.Statistics)
		r.Post("/users/{id}/active", adminH.SetActive)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authn)
		r.Get("/me", userH.Me)
		r.Post("/me/profile-picture", userH.UploadPicture)
		r.Delete("/me/profile-picture", userH.DeletePicture)
	})

	r.Get("/health", HealthHandler(a.store))
}
