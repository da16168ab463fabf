package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		config.User, config.Pass, config.Host, config.Port, config.Name, config.SSLMode,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Scheduler struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Engine holds the blending policy. The defaults reproduce the published rate policy.
type Engine struct {
	SourceTimeout      time.Duration `mapstructure:"source_timeout"`
	StablecoinWeight   float64       `mapstructure:"stablecoin_weight"`
	LiquiditySpreadMin float64       `mapstructure:"liquidity_spread_min"`
	LiquiditySpreadMax float64       `mapstructure:"liquidity_spread_max"`
	CacheMaxAge        time.Duration `mapstructure:"cache_max_age"`
	EmergencyRate      float64       `mapstructure:"emergency_rate"`
}

type Auth struct {
	APIKeys         []string `mapstructure:"api_keys"`
	InternalAPIKeys []string `mapstructure:"internal_api_keys"`
	IPWhitelist     []string `mapstructure:"ip_whitelist"`
	CronSecret      string   `mapstructure:"cron_secret"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

// PublicKeys returns the keys accepted on public endpoints, falling back to internal keys.
func (a Auth) PublicKeys() []string {
	if len(a.APIKeys) > 0 {
		return a.APIKeys
	}
	return a.InternalAPIKeys
}

type RateLimit struct {
	Backend string        `mapstructure:"backend"`
	Limit   int64         `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
	MaxKeys int           `mapstructure:"max_keys"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Breaker struct {
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

type Vendors struct {
	CryptoCompareURL string  `mapstructure:"cryptocompare_url"`
	CoinGeckoURL     string  `mapstructure:"coingecko_url"`
	CoinMarketCapURL string  `mapstructure:"coinmarketcap_url"`
	CoinMarketCapKey string  `mapstructure:"coinmarketcap_key"`
	BinanceURL       string  `mapstructure:"binance_url"`
	MaxRPS           float64 `mapstructure:"max_rps"`
	Breaker          Breaker `mapstructure:"breaker"`
}

type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	BaseURL  string `mapstructure:"base_url"`
}

type Alert struct {
	Telegram Telegram `mapstructure:"telegram"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Engine     Engine     `mapstructure:"engine"`
	Auth       Auth       `mapstructure:"auth"`
	RateLimit  RateLimit  `mapstructure:"rate_limit"`
	Redis      Redis      `mapstructure:"redis"`
	Vendors    Vendors    `mapstructure:"vendors"`
	Alert      Alert      `mapstructure:"alert"`
}

// Init reads .env (optional), the config file (optional) and the environment.
func Init(configFile string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load(viper.New(), configFile)
}

// Load builds the config from v. An empty or missing configFile is not an error.
func Load(v *viper.Viper, configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	setDefaults(v)
	bindEnv(v)

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Auth.APIKeys = cleanList(cfg.Auth.APIKeys)
	cfg.Auth.InternalAPIKeys = cleanList(cfg.Auth.InternalAPIKeys)
	cfg.Auth.IPWhitelist = cleanList(cfg.Auth.IPWhitelist)
	cfg.Auth.CORSOrigins = cleanList(cfg.Auth.CORSOrigins)

	if cfg.Engine.LiquiditySpreadMin > cfg.Engine.LiquiditySpreadMax {
		return nil, fmt.Errorf("liquidity spread min %.2f is greater than max %.2f",
			cfg.Engine.LiquiditySpreadMin, cfg.Engine.LiquiditySpreadMax)
	}
	if cfg.Engine.StablecoinWeight <= 0 {
		return nil, fmt.Errorf("stablecoin weight must be positive, got %.2f", cfg.Engine.StablecoinWeight)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")

	v.SetDefault("db_server.host", "localhost")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.ssl_mode", "disable")
	v.SetDefault("db_server.max_conns", 10)

	v.SetDefault("http_client.timeout_seconds", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval", "5m")

	v.SetDefault("engine.source_timeout", "5s")
	v.SetDefault("engine.stablecoin_weight", 2.0)
	v.SetDefault("engine.liquidity_spread_min", -10.0)
	v.SetDefault("engine.liquidity_spread_max", 50.0)
	v.SetDefault("engine.cache_max_age", "5m")
	v.SetDefault("engine.emergency_rate", 0.0)

	v.SetDefault("auth.api_keys", []string{})
	v.SetDefault("auth.internal_api_keys", []string{})
	v.SetDefault("auth.ip_whitelist", []string{})
	v.SetDefault("auth.cors_origins", []string{"*"})

	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.max_keys", 10000)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("vendors.cryptocompare_url", "https://min-api.cryptocompare.com")
	v.SetDefault("vendors.coingecko_url", "https://api.coingecko.com")
	v.SetDefault("vendors.coinmarketcap_url", "https://pro-api.coinmarketcap.com")
	v.SetDefault("vendors.binance_url", "https://api.binance.com")
	v.SetDefault("vendors.max_rps", 5.0)
	v.SetDefault("vendors.breaker.max_failures", 5)
	v.SetDefault("vendors.breaker.open_timeout", "2m")

	v.SetDefault("alert.telegram.enabled", false)
	v.SetDefault("alert.telegram.base_url", "https://api.telegram.org")
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.ssl_mode", "DB_SSL_MODE")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")

	_ = v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.interval", "SCHEDULER_INTERVAL")

	// engine policy
	_ = v.BindEnv("engine.source_timeout", "SOURCE_TIMEOUT")
	_ = v.BindEnv("engine.stablecoin_weight", "STABLECOIN_WEIGHT")
	_ = v.BindEnv("engine.liquidity_spread_min", "LIQUIDITY_SPREAD_MIN")
	_ = v.BindEnv("engine.liquidity_spread_max", "LIQUIDITY_SPREAD_MAX")
	_ = v.BindEnv("engine.cache_max_age", "RATE_CACHE_MAX_AGE")
	_ = v.BindEnv("engine.emergency_rate", "EMERGENCY_USD_NGN_RATE")

	// auth
	_ = v.BindEnv("auth.api_keys", "API_KEYS")
	_ = v.BindEnv("auth.internal_api_keys", "INTERNAL_API_KEYS")
	_ = v.BindEnv("auth.ip_whitelist", "IP_WHITELIST")
	_ = v.BindEnv("auth.cron_secret", "CRON_SECRET")
	_ = v.BindEnv("auth.cors_origins", "CORS_ORIGINS")

	_ = v.BindEnv("rate_limit.backend", "RATE_LIMIT_BACKEND")
	_ = v.BindEnv("rate_limit.limit", "RATE_LIMIT_LIMIT")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")

	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	// vendors
	_ = v.BindEnv("vendors.coinmarketcap_key", "CMC_API_KEY")
	_ = v.BindEnv("vendors.max_rps", "VENDORS_MAX_RPS")

	_ = v.BindEnv("alert.telegram.enabled", "TELEGRAM_ALERTS_ENABLED")
	_ = v.BindEnv("alert.telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("alert.telegram.chat_id", "TELEGRAM_CHAT_ID")
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
