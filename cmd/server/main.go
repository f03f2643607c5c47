package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mo-shab/tutor/internal/handlers"
	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/relay"
	"github.com/mo-shab/tutor/internal/repository"
	"github.com/mo-shab/tutor/internal/service"
	"github.com/mo-shab/tutor/internal/ws"
	"github.com/mo-shab/tutor/pkg/config"
	"github.com/mo-shab/tutor/pkg/db"
	"github.com/mo-shab/tutor/pkg/mq"
	"github.com/mo-shab/tutor/pkg/obs"
)

func main() {
	log, _ := zap.NewProduction()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	shutdownTracer := obs.InitTracer("tutor-api")
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb, err := db.Open(cfg.PGDSN)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	if err := repository.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	users := repository.NewUserRepo(gdb)
	profiles := repository.NewProfileRepo(gdb)
	sessions := repository.NewSessionRepo(gdb)
	reviews := repository.NewReviewRepo(gdb)
	messages := repository.NewMessageRepo(gdb)

	// Session events are optional; without RabbitMQ the API still serves.
	var pub service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitURL, cfg.SessionExchange)
		if err != nil {
			log.Fatal("connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		pub = p
	}

	registry := relay.NewRegistry()
	notifier := relay.New(registry, log)

	authSvc := service.NewAuthSvc(users)
	profileSvc := service.NewProfileSvc(users, profiles, reviews)
	sessionSvc := service.NewSessionSvc(sessions, pub)
	reviewSvc := service.NewReviewSvc(reviews, sessions)
	messageSvc := service.NewMessageSvc(messages, users, notifier)
	adminSvc := service.NewAdminSvc(users, profiles, notifier)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	ah := handlers.NewAuthHandler(authSvc, cfg)
	ph := handlers.NewProfileHandler(profileSvc)
	sh := handlers.NewSessionHandler(sessionSvc)
	rh := handlers.NewReviewHandler(reviewSvc)
	mh := handlers.NewMessageHandler(messageSvc)
	admh := handlers.NewAdminHandler(adminSvc)
	wsh := ws.NewHandler(registry, cfg.ClientOrigin, log)

	protect := middlewares.JWTAuth(cfg.JWTSecret)

	api := r.Group("/api")
	{
		api.POST("/auth/register", ah.Register)
		api.POST("/auth/login", ah.Login)
		api.POST("/auth/logout", ah.Logout)
		api.GET("/users/me", protect, ah.Me)

		api.GET("/profiles", ph.ListPublic)
		api.GET("/profiles/me", protect, ph.My)
		api.PUT("/profiles/me", protect, ph.Upsert)
		api.GET("/profiles/:id", ph.GetPublic)

		sessionsGrp := api.Group("/sessions", protect)
		{
			sessionsGrp.POST("", sh.Create)
			sessionsGrp.GET("/tutor", sh.ListForTutor)
			sessionsGrp.GET("/student", sh.ListForStudent)
			sessionsGrp.PATCH("/:id/status", sh.UpdateStatus)
			sessionsGrp.POST("/:id/complete", sh.Complete)
		}

		api.GET("/reviews/tutor/:tutorId", rh.ForTutor)
		api.POST("/reviews", protect, rh.Create)

		messagesGrp := api.Group("/messages", protect)
		{
			messagesGrp.GET("", mh.Conversations)
			messagesGrp.POST("", mh.Send)
			messagesGrp.GET("/:conversationId", mh.Messages)
			messagesGrp.PATCH("/:conversationId/read", mh.MarkRead)
		}

		admin := api.Group("/admin", protect, middlewares.RequireRole("ADMIN"))
		{
			admin.GET("/users", admh.ListUsers)
			admin.PATCH("/users/:userId/role", admh.SetRole)
			admin.PATCH("/users/:userId/status", admh.SetStatus)
			admin.GET("/tutors/pending", admh.PendingTutors)
			admin.PATCH("/tutors/:profileId/approve", admh.ApproveTutor)
		}
	}

	r.GET("/ws", protect, wsh.Serve)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info("api listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("stopped")
}
