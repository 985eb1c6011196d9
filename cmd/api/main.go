package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kedaikopi/go-coffee-pickups.git/internal/config"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/httpx"
	kafkax "github.com/kedaikopi/go-coffee-pickups.git/internal/kafka"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/notify"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/pickups"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/postgres"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/redisx"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/wallet"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers: satu per topic
	pSched := kafkax.NewProducer(cfg.KafkaBrokers, pickups.TopicPickupScheduled, 1024)
	pSched.Start(ctx)
	pCancel := kafkax.NewProducer(cfg.KafkaBrokers, pickups.TopicPickupCancelled, 1024)
	pCancel.Start(ctx)
	pNotif := kafkax.NewProducer(cfg.KafkaBrokers, pickups.TopicNotifications, 1024)
	pNotif.Start(ctx)

	publisher := &notify.Publisher{
		Scheduled:     pSched,
		Cancelled:     pCancel,
		Notifications: pNotif,
		ServiceName:   cfg.ServiceName,
	}

	// Service & handler
	svc := &pickups.Service{
		DB:       db,
		Store:    &pickups.Repo{DB: db},
		Wallet:   &wallet.Service{DB: db},
		Cache:    redisx.NewCache(rdb),
		Notifier: publisher,
		Events:   publisher,
	}
	router := httpx.NewRouter()
	ph := &httpx.PickupsHandler{
		Service: svc,
		Wallet:  &wallet.Service{DB: db},
	}
	ph.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// tutup inbox -> flush & close writer
	pSched.Close()
	pCancel.Close()
	pNotif.Close()
	cancel()
	pSched.WaitClosed()
	pCancel.WaitClosed()
	pNotif.WaitClosed()
}
