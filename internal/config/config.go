package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not set")

type Config struct {
	Server   Server
	Client   Client
	Mongo    Mongo
	Storage  Storage
	Postgres Postgres
	Redis    Redis
	RabbitMQ RabbitMQ
	Images   Images
	JWT      JWT
	Log      Log
}

type Server struct {
	Port      string
	PublicURL string
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-* headers are
	// honored. Empty trusts no one.
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type Client struct {
	Origin string
}

type Mongo struct {
	URI      string
	Database string
}

// Storage selects the credential store backend: "mongo" or "postgres".
type Storage struct {
	Users string
}

type Postgres struct {
	DSN string
}

// Redis caching is disabled when Addr is empty.
type Redis struct {
	Addr     string
	Password string
	DB       int
	UserTTL  time.Duration
}

// Event publishing is disabled when URL is empty.
type RabbitMQ struct {
	URL string
}

type Images struct {
	Backend       string
	Dir           string
	PublicBaseURL string
	CloudinaryURL string
}

type JWT struct {
	Secret []byte
	Expiry time.Duration
}

type Log struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.public_url", "")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("client.origin", "*")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "socialapp")
	v.SetDefault("storage.users", "mongo")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.user_ttl", 3*time.Hour)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("images.backend", "local")
	v.SetDefault("images.dir", "./uploads")
	v.SetDefault("images.public_base_url", "")
	v.SetDefault("jwt.expiry", 30*24*time.Hour)
	v.SetDefault("log.level", "info")
}

// Load reads .env (optional), then app.yaml from the working directory or
// from the directory named by APP_CONFIG, then environment overrides such
// as SERVER_PORT or MONGO_URI.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetConfigName("app")
	if dir := os.Getenv("APP_CONFIG"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read app.yaml: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	cfg := &Config{
		Server: Server{
			Port:           v.GetString("server.port"),
			PublicURL:      strings.TrimRight(v.GetString("server.public_url"), "/"),
			TrustedProxies: splitList(v.GetStringSlice("server.trusted_proxies")),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
		},
		Client: Client{
			Origin: v.GetString("client.origin"),
		},
		Mongo: Mongo{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		Storage: Storage{
			Users: strings.ToLower(v.GetString("storage.users")),
		},
		Postgres: Postgres{
			DSN: v.GetString("postgres.dsn"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			UserTTL:  v.GetDuration("redis.user_ttl"),
		},
		RabbitMQ: RabbitMQ{
			URL: v.GetString("rabbitmq.url"),
		},
		Images: Images{
			Backend:       strings.ToLower(v.GetString("images.backend")),
			Dir:           v.GetString("images.dir"),
			PublicBaseURL: strings.TrimRight(v.GetString("images.public_base_url"), "/"),
			CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		},
		JWT: JWT{
			Secret: []byte(secret),
			Expiry: v.GetDuration("jwt.expiry"),
		},
		Log: Log{
			Level: v.GetString("log.level"),
		},
	}

	switch cfg.Storage.Users {
	case "mongo":
	case "postgres":
		if cfg.Postgres.DSN == "" {
			return nil, errors.New("config: storage.users is postgres but postgres.dsn is empty")
		}
	default:
		return nil, fmt.Errorf("config: unknown storage.users %q", cfg.Storage.Users)
	}

	return cfg, nil
}

// splitList accepts yaml lists as well as comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
