package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type LogCfg struct {
	Level string
}

// AuthCfg configures bearer token verification. HMAC signed tokens are checked
// with HMACSecret, RSA and EC signed tokens with the JWKS discovered from Issuer.
type AuthCfg struct {
	HMACSecret string
	Issuer     string
	Audience   string
	AdminRole  string
}

type DBCfg struct {
	Driver        string // "postgres" or "memory"
	DSN           string
	MaxOpen       int
	MaxIdle       int
	AutoMigrate   bool
	LockTimeoutMs int
}

func (c DBCfg) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMs) * time.Millisecond
}

type RedisCfg struct {
	Enabled     bool
	Addr        string
	Password    string
	DB          int
	PoolSize    int
	CacheTTLSec int
	Prefix      string
}

func (c RedisCfg) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

type MQCfg struct {
	URL   string
	Queue string
}

type S3Cfg struct {
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UsePathStyle     bool
	PresignExpireSec int
	SSE              string
}

func (c S3Cfg) PresignExpire() time.Duration {
	return time.Duration(c.PresignExpireSec) * time.Second
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type RateLimitCfg struct {
	RPS   float64
	Burst int
}

type Config struct {
	App       AppCfg
	Log       LogCfg
	Auth      AuthCfg
	Database  DBCfg
	Redis     RedisCfg
	RabbitMQ  MQCfg
	S3        S3Cfg
	Telemetry TelemetryCfg
	RateLimit RateLimitCfg
}

// Load reads configs/config.yaml (or ./config.yaml) after loading .env into the
// process environment.
func Load() (*Config, error) {
	return LoadFrom("./configs", ".")
}

func LoadFrom(paths ...string) (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	base := newViper()
	base.SetConfigName("config")
	for _, p := range paths {
		base.AddConfigPath(p)
	}

	if err := base.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// No files are also allowed, using only env + default values
		return decode(base)
	}

	// Expand ${ENV} once, then parse the expanded content with a fresh viper
	raw, err := os.ReadFile(base.ConfigFileUsed())
	if err != nil {
		return nil, err
	}
	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(raw)))); err != nil {
		return nil, err
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP") // e.g. APP_DATABASE_DSN -> database.dsn
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "timeasy")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.hmacSecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("auth.adminRole", "ADMIN")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.maxOpen", 20)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("database.autoMigrate", true)
	v.SetDefault("database.lockTimeoutMs", 5000)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.cacheTTLSec", 300)
	v.SetDefault("redis.prefix", "timeasy")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "timeasy.changes")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.accessKey", "")
	v.SetDefault("s3.secretKey", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.usePathStyle", true)
	v.SetDefault("s3.presignExpireSec", 900)
	v.SetDefault("s3.sse", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlpEndpoint", "")
	v.SetDefault("telemetry.sampleRatio", 1.0)
	v.SetDefault("rateLimit.rps", 20.0)
	v.SetDefault("rateLimit.burst", 40)
}
