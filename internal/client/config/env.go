package config

import "github.com/dmitrijs2005/shopnet/internal/flagx"

func parseEnv(cfg *Config) {
	if err := flagx.LoadDotEnv(".env"); err != nil {
		panic(err)
	}

	flagx.EnvString("SHOPNET_CLIENT_SERVER_URL", &cfg.ServerURL)
	flagx.EnvString("SHOPNET_CLIENT_SESSION_DB", &cfg.SessionDBPath)
	flagx.EnvDuration("SHOPNET_CLIENT_TIMEOUT", &cfg.RequestTimeout)
	flagx.EnvString("SHOPNET_CLIENT_LOG_LEVEL", &cfg.LogLevel)
}
