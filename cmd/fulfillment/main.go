package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kedaikopi/go-coffee-pickups.git/internal/config"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/fulfillment"
	kafkax "github.com/kedaikopi/go-coffee-pickups.git/internal/kafka"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/notify"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/pickups"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/postgres"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer notifikasi "pickup ready"
	pNotif := kafkax.NewProducer(cfg.KafkaBrokers, pickups.TopicNotifications, 1024)
	pNotif.Start(ctx)

	publisher := &notify.Publisher{
		Notifications: pNotif,
		ServiceName:   cfg.ServiceName + "-fulfillment",
	}

	svc := &fulfillment.Service{
		Store:       &pickups.Repo{DB: db},
		Dedup:       redisx.NewDedup(rdb, redisx.TTLDedup),
		Notifier:    publisher,
		ServiceName: cfg.ServiceName + "-fulfillment",
	}

	// Consumer
	group := getenv("FULFILLMENT_GROUP", "fulfillment-svc")
	workers := mustAtoi(os.Getenv("FULFILLMENT_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, pickups.TopicPickupScheduled, workers)

	go func() {
		log.Printf("fulfillment consumer started: group=%s topic=%s workers=%d", group, pickups.TopicPickupScheduled, workers)
		if err := cons.Start(ctx, svc.HandlePickupScheduled); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	pNotif.Close()
	pNotif.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
