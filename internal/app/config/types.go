package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)

type InternalConfig struct {
	App         App
	MongoDB     AppMongoDB
	Minio       AppMinio
	FHIR        AppFHIR
	JWT         AppJWT
	Model       AppModel
	Assistant   AppAssistant
	Appointment AppAppointment
}

type App struct {
	Env                            string
	Port                           string
	Version                        string
	Timezone                       string
	EndpointPrefix                 string
	MaxRequests                    int
	ShutdownTimeoutInSeconds       int
	RequestBodyLimitInMegabyte     int
	LoginSessionExpiredTimeInHours int
}

type AppMongoDB struct {
	DbName string
}

type AppMinio struct {
	BucketName                               string
	AttachmentMaxUploadSizeInMB              int64
	MinioPreSignedUrlObjectExpiryTimeInHours int
}

type AppFHIR struct {
	BaseUrl string
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppModel struct {
	BaseUrl           string
	APIKey            string
	ChatModel         string
	TranscribeModel   string
	RequestsPerSecond int
}

type AppAssistant struct {
	FirstPageCacheTTLInMinutes int
}

type AppAppointment struct {
	DraftExpiredTimeInHours int
}
