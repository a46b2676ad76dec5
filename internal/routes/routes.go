package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/snejhirpara/tiffin-tracker/internal/audit"
	"github.com/snejhirpara/tiffin-tracker/internal/auth"
	"github.com/snejhirpara/tiffin-tracker/internal/config"
	"github.com/snejhirpara/tiffin-tracker/internal/handlers"
	infraRepo "github.com/snejhirpara/tiffin-tracker/internal/infra/repository"
	"github.com/snejhirpara/tiffin-tracker/internal/middleware"
	"github.com/snejhirpara/tiffin-tracker/internal/ratelimit"
	"github.com/snejhirpara/tiffin-tracker/internal/report"
	"github.com/snejhirpara/tiffin-tracker/internal/storage"
	ucReport "github.com/snejhirpara/tiffin-tracker/internal/usecase/report"
	ucTiffin "github.com/snejhirpara/tiffin-tracker/internal/usecase/tiffin"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (constructed once, injected everywhere)
	// ======================================================
	tiffinRepo := infraRepo.NewTiffinGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	creds := auth.NewCredentialService(cfg)
	avatars := storage.NewAvatarStorage(cfg)
	loginLimiter := ratelimit.NewLoginLimiter(rdb, 10, 0)
	pdfRenderer := report.NewPDFRenderer(cfg.PDFRenderTimeout)

	// ======================================================
	// USE CASES
	// ======================================================
	addTiffinUC := ucTiffin.NewAddTiffin(tiffinRepo, auditDispatcher)
	deleteTiffinUC := ucTiffin.NewDeleteTiffin(tiffinRepo, auditDispatcher)
	datewiseUC := ucTiffin.NewMonthlyDatewise(tiffinRepo)
	summaryUC := ucTiffin.NewMonthlySummary(tiffinRepo)
	takenUC := ucTiffin.NewListTakenTiffins(tiffinRepo)

	generateBillUC := ucReport.NewGenerateBill(
		tiffinRepo,
		pdfRenderer,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, creds, avatars, loginLimiter, auditDispatcher)
	userHandler := handlers.NewUserHandler(db, takenUC, summaryUC)

	tiffinHandler := handlers.NewTiffinHandler(
		addTiffinUC,
		deleteTiffinUC,
		datewiseUC,
		generateBillUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// USERS
		// ------------------------------
		users := api.Group("/users")
		{
			users.POST("", authHandler.Register)
			users.POST("/login", authHandler.Login)

			securedUsers := users.Group("/")
			securedUsers.Use(middleware.AuthMiddleware(cfg))
			{
				securedUsers.POST("/logout", authHandler.Logout)
				securedUsers.PATCH("/update-avatar", authHandler.UpdateAvatar)
				securedUsers.PATCH("/update-password", authHandler.UpdatePassword)
				securedUsers.GET("/taken-tiffins", userHandler.TakenTiffins)
				securedUsers.GET("/admin-users", userHandler.AdminUsers)
				securedUsers.POST("/total-amount", userHandler.TotalAmount)
			}
		}

		// ------------------------------
		// TIFFINS
		// ------------------------------
		tiffins := api.Group("/tiffins")
		tiffins.Use(middleware.AuthMiddleware(cfg))
		{
			tiffins.POST("", tiffinHandler.Add)
			tiffins.DELETE("/delete-tiffin", tiffinHandler.Delete)
			tiffins.POST("/datewise-tiffins-info", tiffinHandler.DatewiseInfo)
			tiffins.POST("/generate-report", tiffinHandler.GenerateReport)
		}

		// ------------------------------
		// AUDIT
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
