package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/config"
	"github.com/BruksfildServices01/therapy-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/therapy-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/therapy-scheduler/internal/middleware"
	"github.com/BruksfildServices01/therapy-scheduler/internal/report"
	ucAppointment "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

// Deps é o que o main monta antes de registrar as rotas.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Loc     *time.Location
	Drafts  ucAppointment.DraftStore
	Audit   audit.Sink
	PDF     *report.PDFRenderer
	Archive report.Archive
}

// NewEnv liga os repositórios gorm ao ambiente dos handlers.
func NewEnv(d Deps) *handlers.Env {
	return &handlers.Env{
		Clients:      infraRepo.NewClientGormRepository(d.DB),
		Services:     infraRepo.NewServiceGormRepository(d.DB),
		Appointments: infraRepo.NewAppointmentGormRepository(d.DB),
		Notices:      infraRepo.NewNoticeGormRepository(d.DB),
		Tx:           infraRepo.NewGormTransactor(d.DB),
		Drafts:       d.Drafts,
		Audit:        d.Audit,
		AuditLogs:    infraRepo.NewAuditGormRepository(d.DB),
		Log:          d.Log,
		Loc:          d.Loc,
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	Register(r, NewEnv(d), d)
}

// Register separa a montagem do Env para os testes usarem stores em memória.
func Register(r *gin.Engine, env *handlers.Env, d Deps) {

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(env)

	clientHandler := handlers.NewClientHandler(env)
	appointmentHandler := handlers.NewAppointmentHandler(env)
	scheduleHandler := handlers.NewScheduleHandler(env)
	batchHandler := handlers.NewBatchHandler(env)
	attendanceHandler := handlers.NewAttendanceHandler(env)
	noticeHandler := handlers.NewNoticeHandler(env)
	reportHandler := handlers.NewReportHandler(env, d.PDF, d.Archive)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTES E SERVIÇOS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.GET("/clients/:id/services", clientHandler.ListServices)
			secured.POST("/clients/:id/services", clientHandler.AssignService)
			secured.DELETE("/clients/:id/services/:serviceId", clientHandler.RemoveService)
			secured.GET("/clients/:id/history", clientHandler.History)
			secured.GET("/services", clientHandler.AllServices)

			// ------------------------------
			// GRADE SEMANAL
			// ------------------------------
			secured.GET("/schedule/week", scheduleHandler.Week)
			secured.POST("/schedule/intents", scheduleHandler.Intents)

			// ------------------------------
			// CITAS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// AGENDAMENTO EM LOTE
			// ------------------------------
			batch := secured.Group("/batch/:clientId")
			{
				batch.GET("", batchHandler.Get)
				batch.DELETE("", batchHandler.Discard)
				batch.PUT("/quantity", batchHandler.SetQuantity)
				batch.PUT("/service", batchHandler.SetService)
				batch.PUT("/month", batchHandler.ShiftMonth)
				batch.POST("/toggle", batchHandler.Toggle)
				batch.PATCH("/entries/:index", batchHandler.SetEntryTime)
				batch.POST("/submit", batchHandler.Submit)
			}

			// ------------------------------
			// ASSISTÊNCIA
			// ------------------------------
			secured.GET("/attendance", attendanceHandler.Day)
			secured.GET("/attendance/hour", attendanceHandler.Hour)
			secured.PUT("/attendance", attendanceHandler.Save)
			secured.GET("/attendance/navigate", attendanceHandler.Navigate)

			// ------------------------------
			// AVISOS
			// ------------------------------
			secured.GET("/notices", noticeHandler.List)
			secured.POST("/notices", noticeHandler.Create)
			secured.DELETE("/notices/:id", noticeHandler.Delete)

			// ------------------------------
			// RELATÓRIOS
			// ------------------------------
			secured.GET("/reports/follow-up", reportHandler.FollowUp)
			secured.GET("/reports/history", reportHandler.History)
			secured.GET("/reports/metrics", reportHandler.Metrics)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
