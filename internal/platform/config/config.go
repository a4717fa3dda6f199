// Package config carga la configuración del proceso desde variables de entorno.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	BlobFS = "fs"
	BlobS3 = "s3"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"pawcare"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DBDSN         string `env:"DB_DSN"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"pawcare.db"`

	BlobDriver  string `env:"BLOB_DRIVER" envDefault:"fs"`
	UploadDir   string `env:"UPLOAD_DIR" envDefault:"uploads"`
	S3Bucket    string `env:"BLOB_S3_BUCKET"`
	S3Region    string `env:"BLOB_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"BLOB_S3_ENDPOINT"`
	S3PathStyle bool   `env:"BLOB_S3_PATH_STYLE" envDefault:"false"`
	S3PublicURL string `env:"BLOB_S3_PUBLIC_URL"`
	MaxUploadMB int64  `env:"MAX_UPLOAD_MB" envDefault:"5"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"false"`
}

// Load lee el entorno del proceso.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom lee un entorno explícito (tests).
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.BlobDriver = strings.ToLower(strings.TrimSpace(c.BlobDriver))
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("config: DB_DSN required for postgres storage")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.BlobDriver {
	case BlobFS:
	case BlobS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return fmt.Errorf("config: BLOB_S3_BUCKET required for s3 blob driver")
		}
	default:
		return fmt.Errorf("config: unknown BLOB_DRIVER %q", c.BlobDriver)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// Addr devuelve la dirección de escucha para http.Server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
