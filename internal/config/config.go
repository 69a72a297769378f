package config

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type DB struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres" validate:"oneof=postgres pgx sqlmock"`
	Host            string        `env:"DB_HOST" envDefault:"127.0.0.1" validate:"required"`
	Port            int           `env:"DB_PORT" envDefault:"54322" validate:"min=1,max=65535"`
	Name            string        `env:"DB_NAME" envDefault:"postgres" validate:"required"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	URL             string        `env:"DB_URL"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"5"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"1"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type Site struct {
	URL         string `env:"SITE_URL" envDefault:"https://hbtinsights.com" validate:"required,url"`
	SitemapPath string `env:"SITEMAP_PATH" envDefault:"web/sitemap.xml" validate:"required"`
	OutputDir   string `env:"WEB_DIR" envDefault:"web" validate:"required"`
}

// Image holds the fixed paths of the rounded icon tool.
type Image struct {
	Input  string
	Output string
	Radius int
}

type Config struct {
	DB    DB
	Site  Site
	Image Image
}

// DefaultImage is what cmd/roundimage runs with.
func DefaultImage() Image {
	return Image{
		Input:  "hbt_icon2.png",
		Output: "output.png",
		Radius: 50,
	}
}

// DSN returns the explicit URL when set, otherwise a key=value string
// understood by both lib/pq and pgx.
func (d DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	parts := []string{
		"host=" + quoteDSNValue(d.Host),
		"port=" + strconv.Itoa(d.Port),
		"user=" + quoteDSNValue(d.User),
		"password=" + quoteDSNValue(d.Password),
		"dbname=" + quoteDSNValue(d.Name),
		"sslmode=" + quoteDSNValue(d.SSLMode),
	}

	if d.ConnectTimeout > 0 {
		secs := int(d.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		parts = append(parts, "connect_timeout="+strconv.Itoa(secs))
	}

	return strings.Join(parts, " ")
}

// Redacted is safe to log.
func (d DB) Redacted() string {
	if d.URL != "" {
		if u, err := url.Parse(d.URL); err == nil {
			return u.Redacted()
		}
		return "<url>"
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s", d.Host, d.Port, d.Name, d.User)
}

func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return Parse()
}

// Parse builds the config from the current environment without reading .env.
func Parse() (*Config, error) {
	cfg := &Config{Image: DefaultImage()}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
