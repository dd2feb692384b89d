package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig lists the recognised environment variables. Unset variables
// stay nil and leave the current value alone.
type envConfig struct {
	Port           *string        `env:"PORT"`
	GRPCHealthAddr *string        `env:"GRPC_HEALTH_ADDR"`
	Backend        *string        `env:"AUTH_BACKEND"`
	DatabaseDSN    *string        `env:"DATABASE_DSN"`
	SecretKey      *string        `env:"JWT_SECRET"`
	BcryptCost     *int           `env:"BCRYPT_COST"`
	StoreTimeout   *time.Duration `env:"STORE_TIMEOUT"`
	ForceSync      *bool          `env:"FORCE_SYNC"`
	LogLevel       *string        `env:"LOG_LEVEL"`
}

func parseEnv(config *Config, environ map[string]string) error {
	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return err
	}

	if e.Port != nil {
		config.HTTPAddr = portToAddr(*e.Port)
	}
	setIf(&config.GRPCHealthAddr, e.GRPCHealthAddr)
	setIf(&config.Backend, e.Backend)
	setIf(&config.DatabaseDSN, e.DatabaseDSN)
	setIf(&config.SecretKey, e.SecretKey)
	setIf(&config.BcryptCost, e.BcryptCost)
	setIf(&config.StoreTimeout, e.StoreTimeout)
	setIf(&config.ForceSync, e.ForceSync)
	setIf(&config.LogLevel, e.LogLevel)
	return nil
}

// portToAddr accepts either a bare port ("5000") or a full address.
func portToAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
