package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"sira/backend/internal/account"
	"sira/backend/internal/api/handler"
	"sira/backend/internal/auth"
	"sira/backend/internal/config"
	"sira/backend/internal/mailer"
	"sira/backend/internal/notify"
	"sira/backend/internal/report"
	"sira/backend/internal/storage"
	"sira/backend/internal/upload"
)

func setupDependencies(cfg *config.Config) (*storage.Service, *upload.MinioStore) {
	// 1. Redis (кеш адмін-списку; не критичний для старту)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: Redis unavailable, report cache disabled: %v", err)
		rdb = nil
	}

	// 2. MongoDB
	store, err := storage.NewService(cfg.MongoURI, cfg.MongoDB, rdb)
	if err != nil {
		log.Fatalf("Failed to connect MongoDB: %v", err)
	}

	// 3. MinIO (evidence object storage)
	objStore, err := upload.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to init object storage: %v", err)
	}

	log.Println("Database, cache and object storage connections established.")
	return store, objStore
}

func main() {
	log.Println("Starting Sira Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET не встановлено!")
	}

	// 1. Ініціалізація залежностей
	store, objStore := setupDependencies(cfg)
	defer store.Close()

	if err := handler.EnsureUploadDir(cfg.UploadDir); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	var notifier notify.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Printf("Warning: Telegram notifications disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	// 2. Сервіси
	accounts := account.NewService(store, mailer.NewSMTPMailer(cfg))
	reports := report.NewService(store, upload.NewPipeline(objStore), notifier)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// 3. Налаштування Gin та роутингу
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	h := handler.NewHandler(accounts, reports, tokens, store, cfg)

	r.GET("/", h.Welcome)

	// Credential flows
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/user", h.Register)
		authGroup.POST("/user/verify", h.VerifyEmail)
		authGroup.POST("/user/login", h.Login)
		authGroup.POST("/user/logout", h.Logout)
		authGroup.POST("/user/resend-otp", h.ResendOTP)

		authGroup.GET("/user", h.VerifyToken, h.AdminOnly, h.ListUsers)
		authGroup.DELETE("/user", h.VerifyToken, h.AdminOnly, h.PurgeUsers)

		// Password reset (3 кроки)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/verify-otp", h.VerifyResetOTP)
		authGroup.POST("/reset-password", h.ResetPassword)
	}

	// Reports (owner-scoped)
	reportGroup := r.Group("/report", h.VerifyToken)
	{
		reportGroup.POST("/user", h.CreateReport)
		reportGroup.GET("/user", h.MyReports)
		reportGroup.PATCH("/user/:id", h.UpdateReport)
		reportGroup.DELETE("/user/:id", h.DeleteReport)
	}

	// Admin triage
	adminGroup := r.Group("/admin", h.VerifyToken, h.AdminOnly)
	{
		adminGroup.GET("/reports", h.AllReports)
		adminGroup.PATCH("/reports/:id/status", h.UpdateReportStatus)
		adminGroup.GET("/users/:id/reports", h.UserReports)
	}

	r.NoRoute(h.NotFound)

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("App Listening on Port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
