package config

import "os"

// Config collects the environment-driven settings for the service.
type Config struct {
	Port string

	// Mongo store holding the catalog and the interaction log.
	MongoURI       string
	MoviesDB       string
	InteractionsDB string

	// Upstream movies API wrapped by the random/search proxies.
	MoviesAPIURL string

	// Redis, used only to cache search-proxy responses.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// SQLite file for recommendation impression tracking.
	TrackingDB string

	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables, applying the
// defaults the docker-compose setup expects.
func Load() Config {
	return Config{
		Port:           getEnvOrDefault("PORT", "8090"),
		MongoURI:       getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MoviesDB:       getEnvOrDefault("MONGO_MOVIES_DB", "movies_db"),
		InteractionsDB: getEnvOrDefault("MONGO_INTERACTIONS_DB", "opiniones_db"),
		MoviesAPIURL:   getEnvOrDefault("MOVIES_API_URL", "http://movies-api:8000"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		TrackingDB:     getEnvOrDefault("TRACKING_DB", "impressions.db"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:        getEnvOrDefault("LOG_FILE", "server.log"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
