package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type ConfigStruct struct {
	Port                      string
	AccessTokenSecret         string
	RefreshTokenSecret        string
	AccessTokenExpireHour     int
	RefreshTokenExpireDay     int
	WaitForRedisConnectionSec int
	RedisUrl                  string
	RedisPassword             string
	MongodbDatabaseUrl        string
	MongodbDatabaseName       string
	PostgresDatabaseUrl       string
	RabbitMqUrl               string
	ServerAddress             string
	CorsAllowedOrigins        []string
	SentryDns                 string
	SentryRelease             string
	PrintErrors               bool
	UploadDirectory           string
	Domain                    string
}

var configs = ConfigStruct{}

func GetConfigs() ConfigStruct {
	return configs
}

func LoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	configs.Port = os.Getenv("PORT")
	configs.AccessTokenSecret = os.Getenv("ACCESS_TOKEN_SECRET")
	configs.RefreshTokenSecret = os.Getenv("REFRESH_TOKEN_SECRET")
	configs.AccessTokenExpireHour, _ = strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_HOUR"))
	if configs.AccessTokenExpireHour == 0 {
		configs.AccessTokenExpireHour = 1
	}
	configs.RefreshTokenExpireDay, _ = strconv.Atoi(os.Getenv("REFRESH_TOKEN_EXPIRE_DAY"))
	if configs.RefreshTokenExpireDay == 0 {
		configs.RefreshTokenExpireDay = 30
	}
	configs.RedisUrl = os.Getenv("REDIS_URL")
	configs.RedisPassword = os.Getenv("REDIS_PASSWORD")
	configs.MongodbDatabaseUrl = os.Getenv("MONGODB_DATABASE_URL")
	configs.MongodbDatabaseName = os.Getenv("MONGODB_DATABASE_NAME")
	configs.PostgresDatabaseUrl = os.Getenv("POSTGRES_DATABASE_URL")
	configs.RabbitMqUrl = os.Getenv("RABBITMQ_URL")
	configs.WaitForRedisConnectionSec, _ = strconv.Atoi(os.Getenv("WAIT_REDIS_CONNECTION_SEC"))
	configs.CorsAllowedOrigins = strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), "---")
	for i := range configs.CorsAllowedOrigins {
		configs.CorsAllowedOrigins[i] = strings.TrimSpace(configs.CorsAllowedOrigins[i])
	}
	configs.SentryDns = os.Getenv("SENTRY_DNS")
	configs.SentryRelease = os.Getenv("SENTRY_RELEASE")
	configs.PrintErrors = os.Getenv("PRINT_ERRORS") == "true"
	configs.ServerAddress = os.Getenv("SERVER_ADDRESS")
	configs.UploadDirectory = os.Getenv("UPLOAD_DIRECTORY")
	if configs.UploadDirectory == "" {
		configs.UploadDirectory = "./upload"
	}
	configs.Domain = os.Getenv("DOMAIN")
}
