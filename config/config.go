package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP      HTTP
		Log       Log
		PG        PG
		S3        S3
		Kafka     Kafka
		Pipeline  Pipeline
		Dispatch  Dispatch
		Upload    Upload
		Reclaimer Reclaimer
		Swagger   Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
		Table   string `env:"PG_FILES_TABLE" envDefault:"files"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS,required"`
		GroupID string   `env:"KAFKA_GROUP_ID,required"`
		Topic   string   `env:"KAFKA_TOPIC,required"`
	}

	Pipeline struct {
		MaxObjectSize   int64  `env:"PIPELINE_MAX_OBJECT_SIZE" envDefault:"10485760"`
		ImageMaxWidth   int    `env:"PIPELINE_IMAGE_MAX_WIDTH" envDefault:"1200"`
		ImageQuality    int    `env:"PIPELINE_IMAGE_QUALITY" envDefault:"80"`
		OriginalPrefix  string `env:"PIPELINE_ORIGINAL_PREFIX" envDefault:"original/"`
		ProcessedPrefix string `env:"PIPELINE_PROCESSED_PREFIX" envDefault:"processed/"`
	}

	Dispatch struct {
		CommitTimeout   time.Duration `env:"DISPATCH_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"DISPATCH_PROCESS_TIMEOUT" envDefault:"30s"` // full batch: fetch, transcode, write, status update
		ShutdownTimeout time.Duration `env:"DISPATCH_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Upload struct {
		URLTTL         time.Duration `env:"UPLOAD_URL_TTL" envDefault:"6m"`
		DownloadURLTTL time.Duration `env:"DOWNLOAD_URL_TTL" envDefault:"5m"`
		RecordTTL      time.Duration `env:"UPLOAD_RECORD_TTL" envDefault:"168h"`
	}

	Reclaimer struct {
		Interval        time.Duration `env:"RECLAIMER_INTERVAL" envDefault:"1h"`
		ShutdownTimeout time.Duration `env:"RECLAIMER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
