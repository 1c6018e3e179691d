package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	"github.com/BruksfildServices01/rdv-service/internal/config"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/document"
	"github.com/BruksfildServices01/rdv-service/internal/handlers"
	infraRepo "github.com/BruksfildServices01/rdv-service/internal/infra/repository"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/middleware"
	"github.com/BruksfildServices01/rdv-service/internal/notify"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/rdv-service/internal/usecase/appointment"
	ucContract "github.com/BruksfildServices01/rdv-service/internal/usecase/contract"
)

// Deps are the singletons built by main and shared with background jobs.
type Deps struct {
	DB            *gorm.DB
	Config        *config.Config
	Log           logrus.FieldLogger
	Loc           *time.Location
	Appointments  domain.Repository
	Documents     document.Store
	AuditLogger   *audit.Logger
	Audit         *audit.Dispatcher
	Notifications *notify.Service
	Archiver      *ucAppointment.ArchivePreviousMonth
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.Metrics(),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	contractRepo := infraRepo.NewContractGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	clock := timezone.Clock(d.Loc)

	createContractUC := ucContract.NewCreateContract(d.Appointments, contractRepo, d.Documents, d.Audit).
		WithClock(clock)

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:               ucAppointment.NewCreateAppointment(d.Appointments, d.Audit),
		Get:                  ucAppointment.NewGetAppointment(d.Appointments),
		List:                 ucAppointment.NewListAppointments(d.Appointments),
		Update:               ucAppointment.NewUpdateAppointment(d.Appointments, d.Audit),
		Treatment:            ucAppointment.NewUpdateTreatment(d.Appointments, d.Audit),
		Delete:               ucAppointment.NewDeleteAppointment(d.Appointments, d.Audit),
		Complete:             ucAppointment.NewCompleteAppointment(d.Appointments, d.Audit).WithClock(clock),
		Invoice:              ucAppointment.NewInvoiceAppointment(d.Appointments, createContractUC, d.Audit).WithClock(clock),
		Replanify:            ucAppointment.NewReplanifyAppointment(d.Appointments, d.Audit),
		Cancel:               ucAppointment.NewCancelAppointment(d.Appointments, d.Audit).WithClock(clock),
		SetStatus:            ucAppointment.NewSetAppointmentStatus(d.Appointments, d.Audit).WithClock(clock),
		Archive:              ucAppointment.NewArchiveAppointment(d.Appointments, d.Audit),
		ArchivePreviousMonth: d.Archiver,
	})

	contractHandler := handlers.NewContractHandler(
		createContractUC,
		ucContract.NewRegenerateContract(d.Appointments, contractRepo, d.Documents, d.Audit).WithClock(clock),
		ucContract.NewUpdateContractStatus(contractRepo, d.Audit).WithClock(clock),
		ucContract.NewQueryContracts(contractRepo, d.Documents),
	)

	authHandler := handlers.NewAuthHandler(d.DB, d.Config.JWTSecret)
	meHandler := handlers.NewMeHandler(d.DB)
	notificationHandler := handlers.NewNotificationHandler(d.Notifications)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger)

	loginLimiter := middleware.NewIPRateLimiter(d.Config.RateLimitRPS, d.Config.RateLimitBurst)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", loginLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/checklists", appointmentHandler.Checklists)
			secured.POST("/appointments/archive-previous-month", appointmentHandler.ArchivePreviousMonth)

			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PUT("/appointments/:id/treatment", appointmentHandler.UpdateTreatment)
			secured.GET("/appointments/:id/summary", appointmentHandler.Summary)

			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/invoice", appointmentHandler.Invoice)
			secured.PATCH("/appointments/:id/replanify", appointmentHandler.Replanify)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/status", middleware.RequireAdmin(), appointmentHandler.SetStatus)
			secured.PATCH("/appointments/:id/archive", appointmentHandler.Archive)
			secured.PATCH("/appointments/:id/unarchive", appointmentHandler.Unarchive)

			secured.POST("/appointments/:id/contract", contractHandler.CreateForAppointment)
			secured.POST("/appointments/:id/contract/regenerate", contractHandler.Regenerate)

			// ------------------------------
			// CONTRACTS
			// ------------------------------
			secured.GET("/contracts", contractHandler.List)
			secured.GET("/contracts/:id", contractHandler.Get)
			secured.PATCH("/contracts/:id/status", contractHandler.UpdateStatus)
			secured.GET("/contracts/:id/document", contractHandler.Document)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
