package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	LLM       LLMConfig
	Assistant AssistantConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

// StoreConfig selects and configures the expense store backend.
type StoreConfig struct {
	Driver   string
	Mongo    MongoConfig
	Database DatabaseConfig
	SQLite   SQLiteConfig
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SQLiteConfig struct {
	Path string
}

type LLMConfig struct {
	Provider string
	Model    string
	Groq     GroqConfig
	GigaChat GigaChatConfig
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type AssistantConfig struct {
	CurrencySymbol string
	DefaultUserID  string
}

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	ProviderGroq     = "groq"
	ProviderGigaChat = "gigachat"
)

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 60)
	if err != nil {
		return nil, err
	}
	groqTimeout, err := getEnvInt("GROQ_TIMEOUT", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
			Mongo: MongoConfig{
				URI:        getEnv("MONGO_URI", "mongodb://localhost:27017/"),
				Database:   getEnv("MONGO_DATABASE", "finance_assistant"),
				Collection: getEnv("MONGO_COLLECTION", "expenses"),
			},
			Database: DatabaseConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				DBName:   getEnv("DB_NAME", "finance_assistant"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
			SQLite: SQLiteConfig{
				Path: getEnv("SQLITE_PATH", "data/finance_assistant.db"),
			},
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderGroq)),
			Model:    getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			Groq: GroqConfig{
				APIKey:  getEnv("GROQ_API_KEY", ""),
				BaseURL: strings.TrimRight(getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"), "/"),
				Timeout: time.Duration(groqTimeout) * time.Second,
			},
			GigaChat: GigaChatConfig{
				APIKey:             getEnv("GIGACHAT_API_KEY", ""),
				Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
				InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
			},
		},
		Assistant: AssistantConfig{
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
			DefaultUserID:  getEnv("DEFAULT_USER_ID", "user_1"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", c.Server.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo store")
		}
	case DriverSQLite:
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("invalid store driver '%s': must be one of mongo, postgres, sqlite, memory", c.Store.Driver)
	}

	switch c.LLM.Provider {
	case ProviderGroq, ProviderGigaChat:
	default:
		return fmt.Errorf("invalid llm provider '%s': must be one of groq, gigachat", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be an integer", key, raw)
	}
	return value, nil
}
