package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hritamkar/library-management/internal/pkg/logger"
	"github.com/hritamkar/library-management/internal/utils"
)

type Config struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	FinePerDay  int      `yaml:"fine_per_day"`
	RedisAddr   string   `yaml:"redis_addr"`
}

// LoadConfig reads the optional YAML file named by CONFIG_FILE, then lets
// environment variables override individual fields. Missing file or fields
// fall back to defaults.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:       ":8080",
		FinePerDay: 10,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("Could not read config file, using defaults", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("Could not parse config file, using defaults", "path", path, "error", err)
		}
	}

	cfg.Addr = utils.GetEnv("SERVER_ADDR", cfg.Addr, log)
	cfg.FinePerDay = utils.GetEnvAsInt("FINE_PER_DAY", cfg.FinePerDay, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)
	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}
