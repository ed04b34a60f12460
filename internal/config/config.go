package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline applied by the router (ex: 60s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Profile data provider (RapidAPI)
	ProfileAPIKey  string        // empty => requests fail with a misconfiguration error
	ProfileAPIHost string        // x-rapidapi-host header value
	ProfileAPIURL  string        // base URL; posts live under <url>/get-profile-posts
	ProfileTimeout time.Duration // HTTP client timeout for provider calls

	// Generative model provider
	ModelProvider     string        // "openai" | "gemini"
	ModelName         string        // empty => provider default
	OpenAIAPIKey      string        // empty => misconfiguration when provider is openai
	OpenAIBaseURL     string        // ex: https://api.openai.com/v1
	GeminiAPIKey      string        // empty => misconfiguration when provider is gemini
	ModelTemperature  float64       // sampling temperature (default: 0.7)
	CompletionTimeout time.Duration // HTTP client timeout for completion calls

	// Writing styles
	StylesFile     string        // optional YAML file overriding the built-in presets
	ReloadInterval time.Duration // interval to reload the styles file (default: 1h)
	WatchStyles    bool          // true => reload as soon as the styles file changes on disk

	// Redis payload cache (optional, empty address = disabled)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 10s)
	RedisRetryInterval  time.Duration // Initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	CacheTTL            time.Duration // TTL of cached provider payloads (default: 6h)

	// HTTP surface
	AllowedOrigins []string // CORS origins, "*" allows any
	AllowedCIDRS   []string // optional, restrict infra endpoints to specific IPs/CIDRs
	AllowedHosts   []string // optional, Host headers accepted on /reload ("*.example.com" allowed)
	TrustProxy     bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ICEBREAKER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ICEBREAKER_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("ICEBREAKER_REQUEST_TIMEOUT", 60*time.Second),

		// Logging
		LogLevel:  getenv("ICEBREAKER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ICEBREAKER_PRETTY_LOG", true),

		// Profile provider
		ProfileAPIKey:  getenv("RAPIDAPI_KEY", ""),
		ProfileAPIHost: getenv("RAPIDAPI_HOST", "linkedin-data-api.p.rapidapi.com"),
		ProfileAPIURL:  strings.TrimRight(getenv("RAPIDAPI_URL", "https://linkedin-data-api.p.rapidapi.com"), "/"),
		ProfileTimeout: mustDuration("RAPIDAPI_TIMEOUT", 20*time.Second),

		// Model provider
		ModelProvider:     strings.ToLower(getenv("ICEBREAKER_MODEL_PROVIDER", "openai")),
		ModelName:         getenv("ICEBREAKER_MODEL", ""),
		OpenAIAPIKey:      getenv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     strings.TrimRight(getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		GeminiAPIKey:      getenv("GEMINI_API_KEY", ""),
		ModelTemperature:  getenvFloat("ICEBREAKER_MODEL_TEMPERATURE", 0.7),
		CompletionTimeout: mustDuration("ICEBREAKER_COMPLETION_TIMEOUT", 45*time.Second),

		// Styles
		StylesFile:     getenv("ICEBREAKER_STYLES_FILE", ""),
		ReloadInterval: mustDuration("ICEBREAKER_STYLES_RELOAD_INTERVAL", time.Hour),
		WatchStyles:    mustBool("ICEBREAKER_STYLES_WATCH", true),

		// Redis settings
		RedisAddr:           getenv("ICEBREAKER_REDIS_ADDR", ""),
		RedisUser:           getenv("ICEBREAKER_REDIS_USERNAME", ""),
		RedisPassword:       getenv("ICEBREAKER_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ICEBREAKER_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 10*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 5*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 2*time.Second),
		CacheTTL:            mustDuration("ICEBREAKER_CACHE_TTL", 6*time.Hour),

		// HTTP surface
		AllowedOrigins: splitAndTrim(getenv("ICEBREAKER_ALLOWED_ORIGINS", "*")),
		AllowedCIDRS:   splitAndTrim(getenv("ICEBREAKER_ALLOWED_CIDRS", "")),
		AllowedHosts:   splitAndTrim(getenv("ICEBREAKER_ALLOWED_HOSTS", "")),
		TrustProxy:     mustBool("ICEBREAKER_TRUST_PROXY", false),
	}

	// Log config only in debug mode with redacted secrets
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	c.ProfileAPIKey = redact(c.ProfileAPIKey)
	c.OpenAIAPIKey = redact(c.OpenAIAPIKey)
	c.GeminiAPIKey = redact(c.GeminiAPIKey)
	c.RedisPassword = redact(c.RedisPassword)
	return c
}

// CacheEnabled reports whether provider payloads should be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.CacheTTL > 0
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***REDACTED***"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
