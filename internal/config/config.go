package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port            string `envconfig:"PORT" default:"8080"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	MongoURI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName     string `envconfig:"MONGO_DB_NAME" default:"storefront"`
	PostgresHost    string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort    int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser    string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPass    string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB      string `envconfig:"POSTGRES_DB" default:"storefront"`
	KafkaBrokers    string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	CatalogDBPath   string `envconfig:"CATALOG_DB_PATH" default:"catalog.db"`
	MigrationsDir   string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	GeoLookupURL    string `envconfig:"GEO_LOOKUP_URL" default:"https://nga-states-lga.onrender.com"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout  int    `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"30"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
