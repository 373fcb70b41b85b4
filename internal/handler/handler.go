package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/crewdesk/staffing/backend/internal/config"
	"github.com/crewdesk/staffing/backend/internal/domain"
	"github.com/crewdesk/staffing/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Get("/", h.GetRoleCatalog)
			r.Get("/{code}", h.DescribeRole)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Post("/conflicts/check", h.CheckConflicts)

		r.Route("/shifts", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateShift)
			r.Get("/", h.GetAllShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.Get("/", h.GetShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/requirements", h.ReplaceShiftRequirements)
				r.Get("/requirements", h.GetShiftRequirements)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/assignments", h.AssignWorker)
				r.Get("/assignments", h.GetShiftAssignments)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/end", h.EndShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/sync", h.SyncShiftFromImport)
				r.Route("/timesheet", func(r chi.Router) {
					r.Use(h.timesheetInfo)
					r.Get("/", h.GetTimesheet)
					r.Post("/submit", h.SubmitTimesheet)
					r.Post("/approve-company", h.ApproveTimesheetAsCompany)
					r.Post("/approve-manager", h.ApproveTimesheetAsManager)
					r.Post("/reject", h.RejectTimesheet)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/resubmit", h.ResubmitTimesheet)
				})
			})
		})

		r.Route("/assignments/{id}", func(r chi.Router) {
			r.Use(h.assignmentInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.UnassignWorker)
			r.Get("/time-entries", h.GetTimeEntries)
			r.Post("/clock-in", h.ClockIn)
			r.Post("/clock-out", h.ClockOut)
			r.Post("/start-break", h.StartBreak)
			r.Post("/end-break", h.EndBreak)
		})
	})
}
