package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		// CORS origins allowed to reach the public API, comma separated
		AllowOrigins []string `env:"APP_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Storage struct {
		Root          string `env:"STORAGE_ROOT" env-default:"./data/media"`
		PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" env-default:"/media"`
	}
	Gallery struct {
		PageSize int           `env:"GALLERY_PAGE_SIZE" env-default:"36"`
		Debounce time.Duration `env:"GALLERY_DEBOUNCE" env-default:"450ms"`
		// workers shared by the startup loads of all viewer sessions
		StartWorkers int `env:"GALLERY_START_WORKERS" env-default:"16"`
	}
	Story struct {
		GlobalInterval time.Duration `env:"STORY_GLOBAL_INTERVAL" env-default:"9s"`
		SlideInterval  time.Duration `env:"STORY_SLIDE_INTERVAL" env-default:"2200ms"`
	}
	Retry struct {
		Attempts uint64        `env:"RETRY_ATTEMPTS" env-default:"2"`
		Delay    time.Duration `env:"RETRY_DELAY" env-default:"400ms"`
	}
	Limits struct {
		RequestsPerSecond int `env:"LIMIT_RPS" env-default:"20"`
		Burst             int `env:"LIMIT_BURST" env-default:"40"`
		UploadWorkers     int `env:"LIMIT_UPLOAD_WORKERS" env-default:"4"`
		MaxUploadMB       int `env:"LIMIT_MAX_UPLOAD_MB" env-default:"50"`
	}
	Report struct {
		StorageCron string `env:"REPORT_STORAGE_CRON" env-default:"0 3 * * *"`
		Timezone    string `env:"REPORT_TIMEZONE" env-default:"Asia/Jakarta"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the lib/pq style connection string used by goose.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetURL returns the postgres:// URL used by the pgx pool.
func (c *Config) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
