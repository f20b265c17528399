package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// StoreBackend selects which persistence variant the server runs against.
type StoreBackend string

const (
	// StoreMySQL persists records and sessions in MySQL tables.
	StoreMySQL StoreBackend = "mysql"
	// StoreSheet persists rows through the HTTP sheet-bridge, addressed by
	// worksheet name.
	StoreSheet StoreBackend = "sheet"
)

// Config stores the application configuration.
type Config struct {
	ServerAddr string
	WebAppDir  string // Path to the web application's UI files

	// Discogs catalog. An empty token degrades catalog search to empty
	// results; it never prevents the server from starting.
	DiscogsToken  string
	DiscogsAPIURL string

	StoreBackend StoreBackend

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Sheet-bridge store. Required when StoreBackend is "sheet".
	SheetAPIURL        string
	SheetAPIKey        string
	SheetInventoryName string
	SheetHistoryName   string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTLSecs  int

	// MinIO cover archive. Entirely optional; covers stay on their remote
	// URL when the endpoint is unset.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	backend := StoreBackend(getEnv("STORE_BACKEND", string(StoreMySQL)))
	if backend != StoreMySQL && backend != StoreSheet {
		log.Printf("Unknown STORE_BACKEND %q, falling back to mysql", backend)
		backend = StoreMySQL
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		WebAppDir:  getEnv("WEB_APP_DIR", "web/ui"),

		DiscogsToken:  os.Getenv("DISCOGS_TOKEN"), // no default on purpose
		DiscogsAPIURL: getEnv("DISCOGS_API_URL", "https://api.discogs.com"),

		StoreBackend: backend,

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // for password, better not to have a hardcoded default
		DBName:     getEnv("DB_NAME", "vinylfm"),

		SheetAPIURL:        os.Getenv("SHEET_API_URL"),
		SheetAPIKey:        os.Getenv("SHEET_API_KEY"),
		SheetInventoryName: getEnv("SHEET_INVENTORY", "Inventory"),
		SheetHistoryName:   getEnv("SHEET_HISTORY", "ListeningHistory"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTLSecs:  getEnvInt("CACHE_TTL_SECONDS", 60),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "vinylfm"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
