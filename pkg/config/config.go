package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App            AppConfig
	DB             DBConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	Password       PasswordConfig
	LoginRateLimit LoginRateLimitConfig
	CORS           CORSConfig
	Metrics        MetricsConfig
}

// Load reads every section from the environment. Each variable is looked up as
// OMS_<NAME> first and then as the bare <NAME>, e.g. OMS_APP_ENV or APP_ENV.
func Load() (*Config, error) {
	var cfg Config
	sections := []any{
		&cfg.App,
		&cfg.DB,
		&cfg.Redis,
		&cfg.JWT,
		&cfg.Cookie,
		&cfg.Password,
		&cfg.LoginRateLimit,
		&cfg.CORS,
		&cfg.Metrics,
	}
	for _, section := range sections {
		if err := envconfig.Process(EnvPrefix, section); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := cfg.JWT.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Password.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.LoginRateLimit.TrustedPrefixes(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" required:"true"`
	Port         string `envconfig:"PORT" default:"8000"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"DATABASE_URL" required:"true"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; an empty URL and address disables the features backed by redis.
type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"REDIS_ADDR"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret                   string `envconfig:"SECRET_KEY" required:"true"`
	Algorithm                string `envconfig:"ALGORITHM" default:"HS256"`
	Issuer                   string `envconfig:"JWT_ISSUER"`
	AccessTokenExpireMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"15"`
	RefreshTokenExpireDays   int    `envconfig:"REFRESH_TOKEN_EXPIRE_DAYS" default:"30"`
}

// AccessTokenTTL falls back to 15 minutes when unset.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.AccessTokenExpireMinutes <= 0 {
		return DefaultAccessTokenTTL
	}
	return time.Duration(j.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL falls back to 30 days when unset.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenExpireDays <= 0 {
		return DefaultRefreshTokenTTL
	}
	return time.Duration(j.RefreshTokenExpireDays) * 24 * time.Hour
}

func (j JWTConfig) validate() error {
	if strings.TrimSpace(j.Secret) == "" {
		return fmt.Errorf("%s is required", EnvSecretKey)
	}
	method := jwt.GetSigningMethod(strings.ToUpper(strings.TrimSpace(j.Algorithm)))
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("unsupported %s %q (expected HS256, HS384 or HS512)", EnvAlgorithm, j.Algorithm)
	}
	if j.RefreshTokenTTL() <= j.AccessTokenTTL() {
		return fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", j.RefreshTokenTTL(), j.AccessTokenTTL())
	}
	return nil
}

// CookieConfig controls the attributes of the refresh-token cookie.
type CookieConfig struct {
	Secure *bool  `envconfig:"COOKIE_SECURE"`
	Domain string `envconfig:"COOKIE_DOMAIN"`
	Path   string `envconfig:"COOKIE_PATH" default:"/"`
}

// SecureFor reports whether cookies must carry the Secure flag. Only local development
// may opt out unless COOKIE_SECURE overrides it.
func (c CookieConfig) SecureFor(app AppConfig) bool {
	if c.Secure != nil {
		return *c.Secure
	}
	return !app.IsDev()
}

type PasswordConfig struct {
	Algorithm        string `envconfig:"PASSWORD_ALGORITHM" default:"bcrypt"`
	BcryptCost       int    `envconfig:"BCRYPT_COST" default:"12"`
	ArgonMemoryKB    int    `envconfig:"ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"ARGON_KEY_LEN" default:"32"`
	UnifyLoginErrors bool   `envconfig:"UNIFY_LOGIN_ERRORS" default:"false"`
}

func (p PasswordConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(p.Algorithm)) {
	case "", PasswordAlgorithmBcrypt, PasswordAlgorithmArgon2id:
		return nil
	}
	return fmt.Errorf("unsupported %s %q", EnvPasswordAlgorithm, p.Algorithm)
}

type LoginRateLimitConfig struct {
	Window     time.Duration `envconfig:"LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit    int           `envconfig:"LOGIN_RATE_LIMIT_IP" default:"20"`
	PhoneLimit int           `envconfig:"LOGIN_RATE_LIMIT_PHONE" default:"5"`
	// TrustedProxies lists the CIDRs whose X-Forwarded-For / X-Real-IP headers are honoured.
	// Empty means the TCP peer address is always the client.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// TrustedPrefixes parses TrustedProxies. A bare address is treated as a single-host prefix.
func (l LoginRateLimitConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(l.TrustedProxies))
	for _, raw := range l.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", raw, err)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", raw, err)
		}
		out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return out, nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}
