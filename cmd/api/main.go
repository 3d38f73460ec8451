package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/example/fleet-inventory/internal/alert"
	"github.com/example/fleet-inventory/internal/api"
	"github.com/example/fleet-inventory/internal/audit"
	"github.com/example/fleet-inventory/internal/auth"
	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/domain/fleet"
	"github.com/example/fleet-inventory/internal/email"
	"github.com/example/fleet-inventory/internal/infrastructure/kafka"
	"github.com/example/fleet-inventory/internal/infrastructure/store"
)

func main() {
	ctx := context.Background()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	kafkaBrokersStr := os.Getenv("KAFKA_BROKERS")
	alertsTopic := getEnv("ALERTS_TOPIC", "fleet-alerts")
	auditTopic := getEnv("AUDIT_TOPIC", "fleet-audit")
	postgresConnStr := os.Getenv("DATABASE_URL")
	smtpHost := getEnv("SMTP_HOST", "localhost")
	smtpPort := getEnv("SMTP_PORT", "1025")
	smtpFrom := getEnv("SMTP_FROM", "inventory@example.com")
	recipients := splitList(getEnv("ALERT_RECIPIENTS", "office@example.com"))

	log.Println("[API] ========================================")
	log.Println("[API] Fleet Inventory")
	log.Println("[API] ========================================")

	clk := clock.System{}

	// Kafka is optional; without it alerts are mailed directly and audit
	// events stay local.
	var alertProducer, auditProducer *kafka.Producer
	if kafkaBrokersStr != "" {
		brokers := strings.Split(kafkaBrokersStr, ",")
		alertProducer = kafka.NewProducer(brokers, alertsTopic)
		defer alertProducer.Close()
		auditProducer = kafka.NewProducer(brokers, auditTopic)
		defer auditProducer.Close()
		log.Printf("[API] Kafka: %v (alerts=%s audit=%s)", brokers, alertsTopic, auditTopic)
	} else {
		log.Println("[API] Kafka disabled")
	}

	registry := fleet.NewRegistry(clk)

	var (
		recorder    audit.Recorder
		itemStore   store.ItemStore
		ticketStore store.TicketStore
		userStore   auth.UserStore
	)
	if postgresConnStr != "" {
		db, err := store.ConnectPostgres(postgresConnStr)
		if err != nil {
			log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()
		if err := store.InitSchema(ctx, db); err != nil {
			log.Fatalf("[API] Failed to initialize schema: %v", err)
		}
		log.Println("[API] Connected to PostgreSQL")

		pgItems := store.NewPostgresItemStore(db)
		itemStore = pgItems
		ticketStore = store.NewPostgresTicketStore(db)
		userStore = store.NewPostgresUserStore(db)
		recorder = store.NewPostgresAuditStore(db, auditProducer, clk)

		if err := loadFleet(ctx, registry, pgItems); err != nil {
			log.Fatalf("[API] Failed to load fleet inventory: %v", err)
		}
	} else {
		log.Println("[API] Running without a database (in-memory state)")
		userStore = store.NewMemoryUserStore()
		recorder = audit.NewLog(auditProducer, clk)
	}

	// The compliance trail can be kept off-ship in DynamoDB instead.
	if table := os.Getenv("DYNAMO_AUDIT_TABLE"); table != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("[API] Failed to load AWS config: %v", err)
		}
		recorder = store.NewDynamoAuditStore(dynamodb.NewFromConfig(awsCfg), table, clk)
		log.Printf("[API] Audit log: DynamoDB table %s", table)
	}

	emailSvc := email.NewService(smtpHost, smtpPort, smtpFrom)
	var notifier alert.Notifier
	if alertProducer != nil {
		notifier = alert.NewKafkaNotifier(alertProducer)
	} else {
		notifier = alert.NewEmailNotifier(emailSvc, recipients)
	}
	engine := alert.NewEngine(notifier)

	jwtService := auth.NewJWTService(jwtSecret, 12*time.Hour)
	userService := auth.NewUserService(userStore)
	bootstrapAdmin(ctx, userService)

	handlers := api.NewHandlers(registry, engine, recorder, itemStore, ticketStore, clk)
	if ticketStore != nil {
		tickets, err := ticketStore.LoadTickets(ctx, "")
		if err != nil {
			log.Fatalf("[API] Failed to load tickets: %v", err)
		}
		handlers.LoadTickets(tickets)
		log.Printf("[API] Loaded %d tickets", len(tickets))
	}

	router := api.NewRouter(api.RouterConfig{
		Handlers:     handlers,
		AuthHandlers: api.NewAuthHandlers(userService, jwtService),
		JWTService:   jwtService,
	})

	server := &http.Server{
		Addr:    getEnv("LISTEN_ADDR", ":8080"),
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

// loadFleet rebuilds the in-memory registry from stored item snapshots.
func loadFleet(ctx context.Context, registry *fleet.Registry, items *store.PostgresItemStore) error {
	vessels, err := items.Vessels(ctx)
	if err != nil {
		return err
	}
	for _, vessel := range vessels {
		if err := registry.RegisterVessel(vessel); err != nil {
			return err
		}
		snapshots, err := items.LoadVesselInventory(ctx, vessel)
		if err != nil {
			return err
		}
		for _, it := range snapshots {
			if err := registry.RestoreItem(vessel, it); err != nil {
				return err
			}
		}
		log.Printf("[API] Loaded %d items for %s", len(snapshots), vessel)
	}
	return nil
}

// bootstrapAdmin ensures an admin account exists so a fresh deployment
// can log in. Credentials come from the environment, never defaults.
func bootstrapAdmin(ctx context.Context, users *auth.UserService) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}
	_, err := users.Register(ctx, username, password, auth.RoleAdmin)
	if err != nil && !errors.Is(err, auth.ErrUserExists) {
		log.Printf("[API] Failed to bootstrap admin user: %v", err)
		return
	}
	if err == nil {
		log.Printf("[API] Bootstrapped admin user %s", username)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
