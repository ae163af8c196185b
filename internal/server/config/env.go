package config

import (
	"strings"

	"github.com/dmitrijs2005/shopnet/internal/flagx"
)

// parseEnv overlays Config with SHOPNET_* variables. A .env file in the
// working directory is loaded first; real environment variables win over it.
func parseEnv(c *Config) {
	if err := flagx.LoadDotEnv(".env"); err != nil {
		panic(err)
	}

	flagx.EnvString("SHOPNET_HTTP_ADDR", &c.EndpointAddrHTTP)
	flagx.EnvString("SHOPNET_DATABASE_DSN", &c.DatabaseDSN)
	flagx.EnvString("SHOPNET_SECRET_KEY", &c.SecretKey)
	flagx.EnvDuration("SHOPNET_ACCESS_TOKEN_TTL", &c.AccessTokenValidityDuration)
	flagx.EnvDuration("SHOPNET_REFRESH_TOKEN_TTL", &c.RefreshTokenValidityDuration)
	flagx.EnvInt("SHOPNET_BCRYPT_COST", &c.BcryptCost)
	flagx.EnvInt("SHOPNET_AUTH_RATE_LIMIT", &c.AuthRateLimitPerMinute)
	flagx.EnvString("SHOPNET_LOG_LEVEL", &c.LogLevel)
	flagx.EnvString("SHOPNET_S3_USER", &c.S3RootUser)
	flagx.EnvString("SHOPNET_S3_PASSWORD", &c.S3RootPassword)
	flagx.EnvString("SHOPNET_S3_BUCKET", &c.S3Bucket)
	flagx.EnvString("SHOPNET_S3_REGION", &c.S3Region)
	flagx.EnvString("SHOPNET_S3_ENDPOINT", &c.S3BaseEndpoint)
	flagx.EnvString("SHOPNET_S3_PUBLIC_URL", &c.S3PublicBaseURL)

	var policy string
	flagx.EnvString("SHOPNET_ACCOUNT_TYPE_POLICY", &policy)
	if policy != "" {
		c.AccountTypePolicy = AccountTypePolicy(policy)
	}

	var origins string
	flagx.EnvString("SHOPNET_CORS_ORIGINS", &origins)
	if origins != "" {
		c.CORSAllowedOrigins = splitList(origins)
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
