package router

import (
	"time"

	"volunteerhub/config"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/middleware"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/service"
	"volunteerhub/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notifRepo)
	appSvc := service.NewApplicationService(appRepo, oppRepo, notifSvc)
	msgSvc := service.NewMessageService(msgRepo, userRepo, hub, notifSvc)
	dashboardSvc := service.NewDashboardService(oppRepo, appRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, dashboardSvc)
	oppHandler := handler.NewOpportunityHandler(oppRepo)
	appHandler := handler.NewApplicationHandler(appSvc, userRepo)
	msgHandler := handler.NewMessageHandler(msgSvc)
	notifHandler := handler.NewNotificationHandler(notifRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	ngoOnly := middleware.RequireRole(domain.RoleNGO)
	volunteerOnly := middleware.RequireRole(domain.RoleVolunteer)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.GET("/dashboard", meHandler.GetDashboard)
			me.GET("/notifications", notifHandler.List)
			me.PUT("/notifications/:id/read", notifHandler.MarkRead)
		}

		api.GET("/opportunities", authMw, oppHandler.List)
		api.GET("/opportunities/:id", authMw, oppHandler.Get)
		api.POST("/opportunities", authMw, ngoOnly, oppHandler.Create)
		api.PUT("/opportunities/:id", authMw, ngoOnly, oppHandler.Update)

		api.POST("/applications", authMw, volunteerOnly, appHandler.Submit)
		api.GET("/applications", authMw, appHandler.List)
		api.POST("/applications/:id/accept", authMw, ngoOnly, appHandler.Accept)
		api.POST("/applications/:id/reject", authMw, ngoOnly, appHandler.Reject)

		api.GET("/messages/conversations", authMw, msgHandler.Conversations)
		api.GET("/messages/thread/:user_id", authMw, msgHandler.Thread)
		api.POST("/messages", authMw, msgHandler.Send)
	}

	r.GET("/ws/messages", handler.UpgradeMessageWS(&cfg.JWT, hub, msgSvc))

	return r
}
