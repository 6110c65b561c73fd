package main

import (
	"context"
	"log"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/delivery/http/middlewares"
	"medassist-service/internal/app/delivery/http/routers"
	"medassist-service/internal/app/drivers/database"
	"medassist-service/internal/app/drivers/logger"
	"medassist-service/internal/app/drivers/messaging"
	driverstorage "medassist-service/internal/app/drivers/storage"
	"medassist-service/internal/app/services/core/appointments"
	"medassist-service/internal/app/services/core/assistant"
	"medassist-service/internal/app/services/core/auth"
	"medassist-service/internal/app/services/core/patients"
	"medassist-service/internal/app/services/core/session"
	fhirappointments "medassist-service/internal/app/services/fhir/appointments"
	fhirencounters "medassist-service/internal/app/services/fhir/encounters"
	fhirpatients "medassist-service/internal/app/services/fhir/patients"
	fhirslots "medassist-service/internal/app/services/fhir/slots"
	"medassist-service/internal/app/services/shared/eventqueue"
	"medassist-service/internal/app/services/shared/llm"
	"medassist-service/internal/app/services/shared/redis"
	"medassist-service/internal/app/services/shared/storage"
	"medassist-service/internal/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	utils.SetProductionMode(internalConfig.App.Env == "production")

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	mongoDB := mongoClient.Database(internalConfig.MongoDB.DbName)
	redisClient := database.NewRedisClient(driverConfig)
	minioClient := driverstorage.NewMinio(driverConfig)
	rabbitMQConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during dependency shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	minioStorage := storage.NewMinioStorage(bootstrap.Minio, bootstrap.InternalConfig.Minio.BucketName)
	modelClient := llm.NewOpenAIClient(bootstrap.InternalConfig.Model)
	eventPublisher, err := eventqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger)
	if err != nil {
		log.Fatalf("Failed to set up event queue: %v", err)
	}
	sessionService := session.NewSessionService(redisRepository)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)

	// FHIR clients
	patientFhirClient := fhirpatients.NewPatientFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	encounterFhirClient := fhirencounters.NewEncounterFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	appointmentFhirClient := fhirappointments.NewAppointmentFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	slotFhirClient := fhirslots.NewSlotFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)

	// Auth
	practitionerRepository := auth.NewPractitionerMongoRepository(bootstrap.MongoDB)
	authUsecase := auth.NewAuthUsecase(practitionerRepository, redisRepository, sessionService, bootstrap.InternalConfig)
	authController := auth.NewAuthController(bootstrap.Logger, authUsecase)

	// Assistant
	sessionRepository := assistant.NewChatSessionMongoRepository(bootstrap.MongoDB)
	messageRepository := assistant.NewChatMessageMongoRepository(bootstrap.MongoDB)
	messageCache := assistant.NewChatMessageRedisCache(
		redisRepository,
		time.Duration(bootstrap.InternalConfig.Assistant.FirstPageCacheTTLInMinutes)*time.Minute,
	)
	assistantUsecase := assistant.NewAssistantUsecase(
		bootstrap.Logger,
		sessionRepository,
		messageRepository,
		messageCache,
		modelClient,
		patientFhirClient,
		encounterFhirClient,
		minioStorage,
		eventPublisher,
		bootstrap.InternalConfig,
	)
	assistantController := assistant.NewAssistantController(bootstrap.Logger, assistantUsecase, sessionService)

	// Patient
	patientUsecase := patients.NewPatientUsecase(
		bootstrap.Logger,
		patientFhirClient,
		encounterFhirClient,
		minioStorage,
		bootstrap.InternalConfig,
	)
	patientController := patients.NewPatientController(bootstrap.Logger, patientUsecase)

	// Appointment
	draftRepository := appointments.NewAppointmentDraftRedisRepository(
		redisRepository,
		time.Duration(bootstrap.InternalConfig.Appointment.DraftExpiredTimeInHours)*time.Hour,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		bootstrap.Logger,
		draftRepository,
		appointmentFhirClient,
		slotFhirClient,
		eventPublisher,
	)
	appointmentController := appointments.NewAppointmentController(bootstrap.Logger, appointmentUsecase, sessionService)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		authController,
		assistantController,
		patientController,
		appointmentController,
	)
}
