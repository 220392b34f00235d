package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a klvdecode deployment.
type Config struct {
	// TS configures Transport Stream demultiplexing.
	TS TSConfig `json:"ts" yaml:"ts"`

	// KLV configures the framer shared by every Local Set.
	KLV KLVConfig `json:"klv" yaml:"klv"`

	// Ingest configures where source files are pulled from.
	Ingest IngestConfig `json:"ingest" yaml:"ingest"`

	// Dispatch configures the live decode-event websocket.
	Dispatch DispatchConfig `json:"dispatch" yaml:"dispatch"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// TSConfig holds Transport-Stream-related configuration.
type TSConfig struct {
	// Enabled controls whether input is treated as an MPEG-TS
	// container at all, versus a raw KLV elementary stream.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// PID is the Transport Stream PID carrying the KLV metadata
	// elementary stream.
	PID uint16 `json:"pid" yaml:"pid"`
}

// KLVConfig holds KLV-framing-related configuration.
type KLVConfig struct {
	// UniversalLabel is the 16-byte key this decoder scans for, hex
	// encoded. Empty means the default UAS Local Data Set UL.
	UniversalLabel string `json:"universal_label" yaml:"universal_label"`

	// RequireChecksum is loaded from the config file, but no code in
	// this repository reads it: the decoder accepts packets without a
	// Checksum (tag 1) item whatever its value.
	RequireChecksum bool `json:"require_checksum" yaml:"require_checksum"`
}

// IngestConfig holds source-ingestion configuration.
type IngestConfig struct {
	// S3 configuration for pulling source files from an object store.
	S3 S3Config `json:"s3" yaml:"s3"`

	// Redis configuration for dedup/idempotency tracking of ingested
	// objects.
	Redis RedisConfig `json:"redis" yaml:"redis"`
}

// S3Config holds S3-compatible storage configuration
type S3Config struct {
	// Endpoint is the S3 endpoint URL (empty uses the AWS default).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Region is the AWS region
	Region string `json:"region" yaml:"region"`

	// Bucket is the default S3 bucket name
	Bucket string `json:"bucket" yaml:"bucket"`

	// AccessKeyID is the S3 access key
	AccessKeyID string `json:"access_key_id" yaml:"access_key_id"`

	// SecretAccessKey is the S3 secret key
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`

	// UsePathStyle forces path-style bucket addressing, needed for
	// most S3-compatible (non-AWS) endpoints.
	UsePathStyle bool `json:"use_path_style" yaml:"use_path_style"`
}

// RedisConfig holds Redis configuration used for ingestion dedup.
type RedisConfig struct {
	// Enabled turns on dedup tracking. Decoding still works with it
	// disabled; repeated objects are simply re-decoded.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Address is the Redis server address (host:port)
	Address string `json:"address" yaml:"address"`

	// Password is the Redis password (optional)
	Password string `json:"password" yaml:"password"`

	// DB is the Redis database number
	DB int `json:"db" yaml:"db"`

	// DedupTTL is how long an object key is remembered as processed.
	DedupTTL time.Duration `json:"dedup_ttl" yaml:"dedup_ttl"`
}

// DispatchConfig holds live-dispatch (websocket) configuration.
type DispatchConfig struct {
	// Enabled turns on the websocket push server.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// ListenAddress is the address the websocket server binds to.
	ListenAddress string `json:"listen_address" yaml:"listen_address"`

	// WriteTimeout bounds a single push to a subscriber.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `json:"level" yaml:"level"`

	// Format is the log format (json, text)
	Format string `json:"format" yaml:"format"`

	// OutputPath is the log output path
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		TS: TSConfig{
			Enabled: true,
			PID:     0x101,
		},
		KLV: KLVConfig{
			UniversalLabel:  "",
			RequireChecksum: false,
		},
		Ingest: IngestConfig{
			S3: S3Config{
				Region:       "us-gov-west-1",
				UsePathStyle: false,
			},
			Redis: RedisConfig{
				Enabled:  false,
				Address:  "localhost:6379",
				DB:       0,
				DedupTTL: 24 * time.Hour,
			},
		},
		Dispatch: DispatchConfig{
			Enabled:       false,
			ListenAddress: "0.0.0.0:8088",
			WriteTimeout:  5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}

// Load loads configuration from a YAML file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.loadFromEnv()

	return cfg, nil
}

// loadFromEnv overrides config from environment variables
func (c *Config) loadFromEnv() {
	if pid := os.Getenv("KLVDECODE_TS_PID"); pid != "" {
		var v uint16
		if _, err := fmt.Sscanf(pid, "0x%x", &v); err == nil {
			c.TS.PID = v
		}
	}
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		c.Ingest.Redis.Address = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		c.Ingest.Redis.Password = pass
	}
	if bucket := os.Getenv("KLVDECODE_S3_BUCKET"); bucket != "" {
		c.Ingest.S3.Bucket = bucket
	}
}
