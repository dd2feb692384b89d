package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted. Only
// keys present in the file override the current values.
type JsonConfig struct {
	HTTPAddr       *string         `json:"http_addr"`
	GRPCHealthAddr *string         `json:"grpc_health_addr"`
	Backend        *string         `json:"backend"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	BcryptCost     *int            `json:"bcrypt_cost"`
	StoreTimeout   *timex.Duration `json:"store_timeout"`
	ForceSync      *bool           `json:"force_sync"`
	LogLevel       *string         `json:"log_level"`
}

// configFile returns the JSON config path: -c/-config first, then the
// GOPHAUTH_CONFIG variable.
func configFile(args []string, environ map[string]string) string {
	if path := flagx.ConfigFileFromArgs(args); path != "" {
		return path
	}
	return environ[flagx.ConfigFileEnv]
}

// parseJson overlays the file at path onto config. An empty path is a no-op.
func parseJson(config *Config, path string) error {
	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setIf(&config.Backend, c.Backend)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.ForceSync, c.ForceSync)
	setIf(&config.LogLevel, c.LogLevel)
	if c.StoreTimeout != nil {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
