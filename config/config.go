package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mediavault/internal/infrastructure/broker"
	"mediavault/internal/infrastructure/catalog"
	"mediavault/internal/infrastructure/ffmpeg"
	"mediavault/internal/infrastructure/fingerprint"
	"mediavault/internal/infrastructure/session"
	"mediavault/pkg/logger"
)

// Default holds the service-level settings.
type Default struct {
	Address       string `yaml:"address"`
	UploadDir     string `yaml:"upload_dir"`
	MaxFileSizeMB int64  `yaml:"max_file_size_in_mb"`
}

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                 `yaml:"environment"`
	Default         Default                `yaml:"default"`
	Sessions        session.Config         `yaml:"upload_sessions"`
	Catalog         catalog.Config         `yaml:"catalog"`
	Fingerprint     fingerprint.Config     `yaml:"fingerprint"`
	Transcoder      ffmpeg.Config          `yaml:"transcoder"`
	BrokerConfig    broker.Config          `yaml:"broker"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher"`
	Logger          logger.Config          `yaml:"logger"`
	Admins          map[string][]uint64    `yaml:"admins"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.BrokerConfig.URI = os.Getenv("BROKER_URI")

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.Default.UploadDir == "" {
		return Error{reason: "default.upload_dir must be set"}
	}

	return nil
}
