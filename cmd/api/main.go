package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mjacademy/registration-service/internal/infra/database"
	"github.com/mjacademy/registration-service/internal/infra/http/handlers"
	"github.com/mjacademy/registration-service/internal/infra/http/middleware"
	"github.com/mjacademy/registration-service/internal/infra/integration/paystack"
	"github.com/mjacademy/registration-service/internal/infra/mail"
	"github.com/mjacademy/registration-service/internal/infra/queue"
	"github.com/mjacademy/registration-service/internal/infra/worker"
	"github.com/mjacademy/registration-service/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOrDefault("RABBITMQ_USER", "guest"),
		envOrDefault("RABBITMQ_PASS", "guest"),
		envOrDefault("RABBITMQ_HOST", "localhost"),
		envOrDefault("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	prospectRepo := database.NewProspectRepository(db)
	studentRepo := database.NewStudentRepository(db)
	paymentRepo := database.NewPaymentRepository(db)

	// 2. Gateways and adapters
	gateway := paystack.NewClient(
		os.Getenv("PAYSTACK_SECRET_KEY"),
		os.Getenv("PAYSTACK_PUBLIC_KEY"),
		envOrDefault("PAYSTACK_URL", "https://api.paystack.co"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(envOrDefault("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOrDefault("MAIL_FROM", "MJ Academy <no-reply@mjacademy.ng>"),
	)

	// 3. UseCases
	saveStepUC := usecase.NewSaveStepUseCase(prospectRepo)
	hydrateUC := usecase.NewHydrateUseCase(prospectRepo)
	initializePaymentUC := usecase.NewInitializePaymentUseCase(prospectRepo, paymentRepo, gateway)
	completeRegistrationUC := usecase.NewCompleteRegistrationUseCase(
		prospectRepo, studentRepo, paymentRepo, gateway, producer,
	)

	// 4. Workers (welcome mail + reconcile consumer, stale attempt sweeper)
	completionWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, completeRegistrationUC)
	go completionWorker.Start(queue.QueueName)

	sweeper := worker.NewStaleAttemptSweeper(db)
	go sweeper.Start(context.Background())

	// 5. Handlers
	registrationHandler := handlers.NewRegistrationHandler(saveStepUC, hydrateUC)
	paymentHandler := handlers.NewPaymentHandler(initializePaymentUC, completeRegistrationUC)
	webhookHandler := handlers.NewWebhookHandler(completeRegistrationUC, os.Getenv("PAYSTACK_SECRET_KEY"))
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://mjacademy.ng", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/registration/step", registrationHandler.HandleSaveStep)
	r.Get("/registration/prospect/{email}", registrationHandler.HandleGetProspect)
	r.Get("/registration/students", registrationHandler.HandleListStudents(studentRepo))
	r.Post("/payments/initialize", paymentHandler.HandleInitialize)
	r.Get("/payments/verify/{reference}", paymentHandler.HandleVerify)
	r.Post("/payments/webhook", webhookHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOrDefault("PORT", "8080")
	log.Printf("🔥 MJ Academy registration API listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
