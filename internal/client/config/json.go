package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current values alone.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	Timeout        *timex.Duration `json:"timeout"`
	TokenFile      *string         `json:"token_file"`
	GRPCHealthAddr *string         `json:"grpc_health_addr"`
}

func configFile(args []string, environ map[string]string) string {
	if path := flagx.ConfigFileFromArgs(args); path != "" {
		return path
	}
	return environ[flagx.ConfigFileEnv]
}

func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.TokenFile != nil {
		cfg.TokenFile = *jc.TokenFile
	}
	if jc.GRPCHealthAddr != nil {
		cfg.GRPCHealthAddr = *jc.GRPCHealthAddr
	}
	return nil
}
