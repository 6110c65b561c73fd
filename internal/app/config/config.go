package config

import (
	"medassist-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", "development"),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte:     utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 12),
			LoginSessionExpiredTimeInHours: utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 12),
		},
		MongoDB: AppMongoDB{
			DbName: utils.GetEnvString("MONGODB_DB_NAME", "medassist"),
		},
		Minio: AppMinio{
			BucketName:                               utils.GetEnvString("MINIO_BUCKET_NAME", "medassist"),
			AttachmentMaxUploadSizeInMB:              utils.GetEnvInt64("APP_MINIO_ATTACHMENT_UPLOAD_MAX_SIZE_IN_MB", 10),
			MinioPreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRESIGNED_URL_EXPIRY_TIME_IN_HOURS", 1),
		},
		FHIR: AppFHIR{
			BaseUrl: utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/fhir"),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Model: AppModel{
			BaseUrl:           utils.GetEnvString("MODEL_BASE_URL", ""),
			APIKey:            utils.GetEnvString("MODEL_API_KEY", ""),
			ChatModel:         utils.GetEnvString("MODEL_CHAT_MODEL", "gpt-4o-mini"),
			TranscribeModel:   utils.GetEnvString("MODEL_TRANSCRIBE_MODEL", "whisper-1"),
			RequestsPerSecond: utils.GetEnvInt("MODEL_REQUESTS_PER_SECOND", 5),
		},
		Assistant: AppAssistant{
			FirstPageCacheTTLInMinutes: utils.GetEnvInt("APP_ASSISTANT_FIRST_PAGE_CACHE_TTL_IN_MINUTES", 10),
		},
		Appointment: AppAppointment{
			DraftExpiredTimeInHours: utils.GetEnvInt("APP_APPOINTMENT_DRAFT_EXPIRED_TIME_IN_HOURS", 24),
		},
	}
}
