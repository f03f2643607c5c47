package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/mo-shab/tutor/internal/notify"
	"github.com/mo-shab/tutor/pkg/mq"
)

type Cfg struct {
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	SessionExchange string `envconfig:"SESSION_EXCHANGE" default:"session.exchange"`
	Queue           string `envconfig:"NOTIFY_QUEUE" default:"notification.q"`
	DLXName         string `envconfig:"NOTIFY_DLX" default:"notification.dlx"`
	DLXQueue        string `envconfig:"NOTIFY_DLQ" default:"notification.q.dlq"`
	Prefetch        int    `envconfig:"NOTIFY_PREFETCH" default:"16"`
}

func main() {
	log, _ := zap.NewProduction()
	defer func() { _ = log.Sync() }()

	_ = godotenv.Load()
	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	var cons *mq.Consumer
	for {
		var err error
		cons, err = mq.NewConsumer(mq.ConsumerConfig{
			URL:      cfg.RabbitURL,
			Exchange: cfg.SessionExchange,
			Queue:    cfg.Queue,
			Bindings: []string{"session.*"},
			Prefetch: cfg.Prefetch,
			DLXName:  cfg.DLXName,
			DLXQueue: cfg.DLXQueue,
		})
		if err == nil {
			break
		}
		log.Warn("rabbitmq connect failed, retrying", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	defer cons.Close()

	worker := notify.NewWorker(cons, notify.NewConsole(log), log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := worker.Run(ctx); err != nil {
			log.Error("worker stopped", zap.Error(err))
		}
	}()
	log.Info("notify worker started", zap.String("queue", cfg.Queue))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}
