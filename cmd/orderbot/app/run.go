package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/balwinder10003-code/ATTRAAH/configs"
	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/cache"
	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/chat"
	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/http"
	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/http/middleware"
	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/kafka"
	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/repo"
	"github.com/balwinder10003-code/ATTRAAH/internal/logging"
	"github.com/balwinder10003-code/ATTRAAH/internal/upi"
	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogPath, cfg.App.LogLevel)
	log := logging.New("app")

	// mysql
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	store, err := repo.NewMySQLOrderStore(ctx, db, cfg.MySQL.OrdersTable)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("init order store: %w", err)
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	tokens := cache.NewRedisActionTokens(rdb, cfg.Redis.TokenTTL)
	dedupe := cache.NewRedisEventDeduper(rdb, cfg.Redis.DedupeTTL)

	// rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		_ = db.Close()
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	notifier, err := chat.NewAMQPNotifier(ch)
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("init notifier: %w", err)
	}

	// kafka lifecycle events, optional
	var events usecase.EventPublisher
	var closeKafka func() error
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			_ = conn.Close()
			_ = db.Close()
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("init kafka producer: %w", err)
		}
		pub := kafka.NewPublisher(producer, cfg.Kafka.TopicEvents)
		events = pub
		closeKafka = pub.Close
	}

	engine := usecase.NewEngine(store, notifier, tokens, events, usecase.Config{
		ApproverID:  cfg.Shop.ApproverID,
		Payee:       upi.Payee{VPA: cfg.Shop.UPIID, Name: cfg.Shop.UPIName},
		SupportLink: cfg.Shop.SupportLink,
	}, logging.New("engine"))

	if err := setupInbound(ch, engine, dedupe, logging.New("chat")); err != nil {
		_ = conn.Close()
		_ = db.Close()
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("start inbound consumer: %w", err)
	}

	eh := http.NewEventHandler(engine, dedupe)
	th := http.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := http.NewRouter(eh, th, authz, logging.New("http"))

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
		if closeKafka != nil {
			_ = closeKafka()
		}
	}

	log.Info("wired", "orders_table", cfg.MySQL.OrdersTable, "kafka", len(cfg.Kafka.Brokers) > 0)
	return &App{Router: router}, cleanup, nil
}

func setupInbound(ch *amqp091.Channel, engine *usecase.Engine, dedupe usecase.EventDeduper, log *slog.Logger) error {
	// declare so a fresh broker works out of the box; the gateway declares too
	if _, err := ch.QueueDeclare(chat.InboundQueue, true, false, false, false, nil); err != nil {
		return err
	}

	h := chat.NewInboundHandler(engine, dedupe, log)
	router := chat.NewRouter(ch, log, chat.WithPrefetch(50), chat.WithRequeue(false))
	router.Register(chat.InboundQueue, h.JSONHandler())
	return router.Start()
}
