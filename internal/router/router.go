package router

import (
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/config"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/handler"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// register/login need no auth
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	clientHandler := handler.NewClientHandler(db)
	protected.POST("/clients", clientHandler.CreateClient)
	protected.GET("/clients", clientHandler.ListClients)
	protected.PUT("/clients/:id", clientHandler.UpdateClient)
	protected.DELETE("/clients/:id", clientHandler.DeleteClient)

	vehicleHandler := handler.NewVehicleHandler(db)
	protected.POST("/vehicles", vehicleHandler.CreateVehicle)
	protected.GET("/vehicles", vehicleHandler.ListVehicles)
	protected.PUT("/vehicles/:id", vehicleHandler.UpdateVehicle)
	protected.DELETE("/vehicles/:id", vehicleHandler.DeleteVehicle)

	serviceHandler := handler.NewServiceHandler(db)
	protected.POST("/services", serviceHandler.CreateService)
	protected.GET("/services", serviceHandler.ListServices)
	protected.PUT("/services/:id", serviceHandler.UpdateService)
	protected.DELETE("/services/:id", serviceHandler.DeleteService)

	costHandler := handler.NewCostHandler(db)
	protected.POST("/costs", costHandler.CreateCost)
	protected.GET("/costs", costHandler.ListCosts)
	protected.PUT("/costs/:id", costHandler.UpdateCost)
	protected.DELETE("/costs/:id", costHandler.DeleteCost)
	protected.GET("/costs/summary", costHandler.CostSummary)

	payableHandler := handler.NewPayableHandler(db)
	protected.GET("/payables", payableHandler.ListPayables)
	protected.POST("/payables/pay", payableHandler.RegisterPayment)

	scheduleHandler := handler.NewScheduleHandler(db)
	protected.GET("/schedule", scheduleHandler.GetSchedule)
	protected.PUT("/schedule", scheduleHandler.SaveSchedule)

	hourlyHandler := handler.NewHourlyHandler(db, cfg.Pricing)
	protected.GET("/hourly-cost", hourlyHandler.GetHourlyCost)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/payables/csv", exportHandler.ExportPayablesCSV)
	protected.GET("/export/payables/xlsx", exportHandler.ExportPayablesXLSX)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
