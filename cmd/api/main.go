package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shift-planner/internal/config"
	"shift-planner/internal/database"
	"shift-planner/internal/handlers"
	"shift-planner/internal/middleware"
	"shift-planner/internal/repositories"
	"shift-planner/internal/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация подключения к базе данных
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Ошибка миграции схемы: %v", err)
	}

	// Создание репозиториев
	employeeRepo := repositories.NewEmployeeRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	timeRepo := repositories.NewTimeRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	swapRepo := repositories.NewSwapRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)

	// Создание сервисов
	tokenTTL := time.Duration(cfg.JWT.TTLHours) * time.Hour
	invitationTTL := time.Duration(cfg.Defaults.InvitationTTLDays) * 24 * time.Hour

	authService := services.NewAuthService(employeeRepo, cfg.JWT.Secret, tokenTTL, cfg.Defaults.VacationBalance)
	employeeService := services.NewEmployeeService(employeeRepo, cfg.Defaults.VacationBalance)
	shiftService := services.NewShiftService(shiftRepo, employeeRepo, notificationRepo)
	timeService := services.NewTimeService(timeRepo)
	leaveService := services.NewLeaveService(leaveRepo, employeeRepo, notificationRepo)
	swapService := services.NewSwapService(swapRepo, shiftRepo, employeeRepo, notificationRepo)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	invitationService := services.NewInvitationService(
		invitationRepo, employeeRepo, authService,
		cfg.Frontend.URL, invitationTTL, cfg.Defaults.VacationBalance,
	)
	reportService := services.NewReportService(shiftRepo, leaveRepo)

	// Создание обработчиков
	appHandler := handlers.NewAppHandler(
		authService, employeeService, shiftService, timeService, leaveService,
		swapService, availabilityService, notificationService, invitationService, reportService,
	)

	// Настройка маршрутизатора Gin
	router := gin.Default()

	// Настройка CORS: разрешаем только фронтенд из конфигурации
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if cfg.Frontend.URL != "" {
		corsConfig.AllowOrigins = []string{cfg.Frontend.URL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	// Публичные маршруты
	router.GET("/api/health", appHandler.Health)
	router.POST("/api/auth/login", appHandler.Login)
	router.POST("/api/auth/setup-admin", appHandler.SetupAdmin)
	router.GET("/api/invitations/verify/:token", appHandler.VerifyInvitation)
	router.POST("/api/register", appHandler.Register)

	// Защищенные маршруты
	api := router.Group("/api")
	api.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		api.GET("/auth/me", appHandler.Me)
		api.PUT("/auth/profile", appHandler.UpdateProfile)
		api.POST("/auth/change-password", appHandler.ChangePassword)

		api.GET("/employees", appHandler.GetEmployeeDirectory)

		api.GET("/shifts", appHandler.GetShifts)

		api.GET("/time-registrations", appHandler.GetTimeRegistrations)
		api.POST("/time-registrations", appHandler.CreateTimeRegistration)
		api.POST("/time-registrations/checkin", appHandler.CheckIn)
		api.POST("/time-registrations/checkout", appHandler.CheckOut)
		api.PUT("/time-registrations/:id", appHandler.UpdateTimeRegistration)
		api.DELETE("/time-registrations/:id", appHandler.DeleteTimeRegistration)

		api.GET("/leave-requests", appHandler.GetLeaveRequests)
		api.POST("/leave-requests", appHandler.CreateLeaveRequest)
		api.DELETE("/leave-requests/:id", appHandler.CancelLeaveRequest)

		api.GET("/shift-swaps", appHandler.GetShiftSwaps)
		api.POST("/shift-swaps", appHandler.CreateShiftSwap)
		api.POST("/shift-swaps/:id/respond", appHandler.RespondShiftSwap)

		api.GET("/availability", appHandler.GetAvailability)
		api.PUT("/availability", appHandler.SetAvailability)

		api.GET("/notifications", appHandler.GetNotifications)
		api.POST("/notifications/:id/read", appHandler.MarkNotificationRead)
		api.POST("/notifications/read-all", appHandler.MarkAllNotificationsRead)

		api.GET("/dashboard/stats", appHandler.GetDashboardStats)

		// Маршруты только для менеджеров
		mgmt := api.Group("")
		mgmt.Use(middleware.ManagerOnly())
		{
			mgmt.GET("/users", appHandler.GetUsers)
			mgmt.POST("/users", appHandler.CreateUser)
			mgmt.PUT("/users/:id", appHandler.UpdateUser)
			mgmt.DELETE("/users/:id", appHandler.DeleteUser)

			mgmt.POST("/shifts", appHandler.CreateShift)
			mgmt.PUT("/shifts/:id", appHandler.UpdateShift)
			mgmt.DELETE("/shifts/:id", appHandler.DeleteShift)
			mgmt.POST("/shifts/publish", appHandler.PublishShifts)

			mgmt.POST("/leave-requests/:id/process", appHandler.ProcessLeaveRequest)

			mgmt.POST("/shift-swaps/:id/approve", appHandler.ApproveShiftSwap)

			mgmt.POST("/invitations", appHandler.CreateInvitation)
			mgmt.GET("/invitations", appHandler.GetInvitations)
			mgmt.DELETE("/invitations/:id", appHandler.DeleteInvitation)

			mgmt.GET("/reports/hours", appHandler.GetHoursReport)
			mgmt.GET("/reports/leave", appHandler.GetLeaveReport)
		}
	}

	// Запуск сервера
	log.Printf("[Main] Starting server on %s", cfg.Server.Port)
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
