package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	}
	Mongo struct {
		URI         string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
		Name        string        `env:"MONGO_DB_NAME" env-default:"instagram_db"`
		TwitterName string        `env:"MONGO_TWITTER_DB_NAME" env-default:"twitter_data"`
		Timeout     time.Duration `env:"MONGO_TIMEOUT" env-default:"10s"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Scraper struct {
		ProfileURL  string        `env:"SCRAPER_URL" env-default:"https://instagram-scraper-api2.p.rapidapi.com/v1/info"`
		PostsURL    string        `env:"SCRAPER_POST_URL" env-default:"https://instagram-scraper-api2.p.rapidapi.com/v1.2/posts"`
		CommentsURL string        `env:"SCRAPER_COMMENTS_URL" env-default:"https://instagram-scraper-api2.p.rapidapi.com/v1/comments"`
		APIKey      string        `env:"RAPIDAPI_KEY"`
		Host        string        `env:"RAPIDAPI_HOST" env-default:"instagram-scraper-api2.p.rapidapi.com"`
		Timeout     time.Duration `env:"SCRAPER_TIMEOUT" env-default:"30s"`
		MaxRetries  uint64        `env:"SCRAPER_MAX_RETRIES" env-default:"3"`
		Usernames   []string      `env:"SCRAPER_USERNAMES" env-default:"taylorswift,zuck,cristiano" env-separator:","`
	}
	Twitter struct {
		BearerToken      string        `env:"TWITTER_BEARER_TOKEN"`
		BaseURL          string        `env:"TWITTER_BASE_URL" env-default:"https://api.twitter.com/2"`
		UserID           string        `env:"TWITTER_USER_ID" env-default:"17919972"`
		MaxTweets        int           `env:"TWITTER_MAX_TWEETS" env-default:"10"`
		PageSize         int           `env:"TWITTER_PAGE_SIZE" env-default:"10"`
		Timeout          time.Duration `env:"TWITTER_TIMEOUT" env-default:"30s"`
		MaxRetries       uint64        `env:"TWITTER_MAX_RETRIES" env-default:"3"`
		MaxRateLimitWait time.Duration `env:"TWITTER_MAX_RATE_LIMIT_WAIT" env-default:"15m"`
	}
	RateLimit struct {
		RPS   float64 `env:"RATE_LIMIT_RPS" env-default:"2"`
		Burst int     `env:"RATE_LIMIT_BURST" env-default:"5"`
	}
	Query struct {
		ProfileSort string `env:"QUERY_PROFILE_SORT" env-default:"asc"`
		PostSort    string `env:"QUERY_POST_SORT" env-default:"asc"`
		Limit       int    `env:"QUERY_LIMIT" env-default:"15"`
		SearchLimit int    `env:"QUERY_SEARCH_LIMIT" env-default:"10"`
	}
	Ingest struct {
		Workers   int    `env:"INGEST_WORKERS" env-default:"1"`
		Cron      string `env:"INGEST_CRON"`
		OutputDir string `env:"INGEST_OUTPUT_DIR"`
		Timezone  string `env:"INGEST_TIMEZONE" env-default:"UTC"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

// New reads the configuration once per process. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		var err error
		if _, statErr := os.Stat(".env"); statErr == nil {
			err = cleanenv.ReadConfig(".env", cfg)
		} else {
			err = cleanenv.ReadEnv(cfg)
		}
		if err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the lib/pq connection string of the legacy relational store.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// PostgresURL returns the pgx connection URL of the legacy relational store.
func (c *Config) PostgresURL() string {
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

// IsDescending reports whether a configured sort direction asks for descending order.
func IsDescending(direction string) bool {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "desc", "descending", "-1":
		return true
	}
	return false
}
