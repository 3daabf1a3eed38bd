package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage selects where analysis history lives and whether progress
// stats are cached.
type Storage struct {
	Backend   string `yaml:"backend"` // "memory" or "mongo"
	MongoURI  string `yaml:"mongo_uri"`
	Database  string `yaml:"database"`
	RedisAddr string `yaml:"redis_addr"` // empty disables the progress cache
}

// Root is the full application configuration.
type Root struct {
	App struct {
		Name     string `yaml:"name"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`
	Storage Storage `yaml:"storage"`
	AI      struct {
		ChatModel    string `yaml:"chat_model"`
		WhisperModel string `yaml:"whisper_model"`
	} `yaml:"ai"`
}

// Load reads the YAML config, trying SPEECHCOACH_CONFIG first and then a
// few conventional locations. A missing file is not an error: defaults
// plus environment variables are enough to run with in-memory storage.
func Load() (*Root, error) {
	cfg := defaults()

	guesses := []string{
		os.Getenv("SPEECHCOACH_CONFIG"),
		"config.yaml",
		filepath.Join("config", "config.yaml"),
	}
	for _, p := range guesses {
		if p == "" {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
		break
	}

	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Storage.MongoURI = uri
		cfg.Storage.Backend = "mongo"
	}
	if addr := os.Getenv("REDIS_URI"); addr != "" {
		cfg.Storage.RedisAddr = stripRedisScheme(addr)
	}
	return cfg, nil
}

func defaults() *Root {
	cfg := &Root{}
	cfg.App.Name = "speechcoach"
	cfg.App.LogLevel = "info"
	cfg.Storage.Backend = "memory"
	cfg.Storage.MongoURI = "mongodb://localhost:27017"
	cfg.Storage.Database = "speechcoach"
	return cfg
}

func stripRedisScheme(addr string) string {
	if len(addr) > 8 && addr[:8] == "redis://" {
		return addr[8:]
	}
	return addr
}
