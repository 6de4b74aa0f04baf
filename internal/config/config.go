package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	DBURL                        string
	DBDisablePreparedBinary      bool
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	CORSAllowedOrigins           []string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	MetricsEnabled               bool
	PprofEnabled                 bool
	PprofAddr                    string
	UptraceEnabled               bool
	UptraceDSN                   string
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	InternalJobToken             string
	WebhookEnabled               bool
	WebhookURL                   string
	WebhookSecret                string
	WebhookTimeout               time.Duration
	WebhookRetries               int
	WebhookRetryBackoff          time.Duration
	WebhookCircuitEnabled        bool
	WebhookCircuitFailureCount   int
	WebhookCircuitOpenTimeout    time.Duration
	WebhookCircuitHalfOpenMaxReq int
	PointsWin                    int
	PointsTie                    int
	PointsLoss                   int
	PointsNoResult               int
	NRRAllOutUsesFullQuota       bool
	RebuildWorkers               int
	LogLevel                     logging.Level
}

// UsePostgres reports whether repositories are backed by DB_URL. An empty
// DB_URL runs the service on in-memory repositories.
func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.DBURL) != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	webhookURL := strings.TrimSpace(getEnv("EVENT_WEBHOOK_URL", ""))
	webhookSecret := strings.TrimSpace(getEnv("EVENT_WEBHOOK_SECRET", ""))
	if webhookURL != "" && webhookSecret == "" {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_SECRET is required when EVENT_WEBHOOK_URL is set")
	}
	webhookTimeout, err := time.ParseDuration(getEnv("EVENT_WEBHOOK_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_TIMEOUT: %w", err)
	}
	if webhookTimeout <= 0 {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_TIMEOUT must be > 0")
	}
	webhookRetries, err := getEnvAsInt("EVENT_WEBHOOK_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_RETRIES: %w", err)
	}
	if webhookRetries < 0 {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_RETRIES must be >= 0")
	}
	webhookRetryBackoff, err := time.ParseDuration(getEnv("EVENT_WEBHOOK_RETRY_BACKOFF", "200ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_RETRY_BACKOFF: %w", err)
	}
	if webhookRetryBackoff <= 0 {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_RETRY_BACKOFF must be > 0")
	}
	webhookCircuitEnabled, err := strconv.ParseBool(getEnv("EVENT_WEBHOOK_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_CIRCUIT_ENABLED: %w", err)
	}
	webhookCircuitFailureCount, err := getEnvAsInt("EVENT_WEBHOOK_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if webhookCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	webhookCircuitOpenTimeout, err := time.ParseDuration(getEnv("EVENT_WEBHOOK_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if webhookCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	webhookCircuitHalfOpenMaxReq, err := getEnvAsInt("EVENT_WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if webhookCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("EVENT_WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pointsWin, err := getEnvAsInt("STANDINGS_POINTS_WIN", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_POINTS_WIN: %w", err)
	}
	pointsTie, err := getEnvAsInt("STANDINGS_POINTS_TIE", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_POINTS_TIE: %w", err)
	}
	pointsLoss, err := getEnvAsInt("STANDINGS_POINTS_LOSS", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_POINTS_LOSS: %w", err)
	}
	pointsNoResult, err := getEnvAsInt("STANDINGS_POINTS_NO_RESULT", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_POINTS_NO_RESULT: %w", err)
	}
	if pointsWin < pointsTie || pointsTie < pointsLoss || pointsLoss < 0 || pointsNoResult < 0 {
		return Config{}, fmt.Errorf("standings points must satisfy win >= tie >= loss >= 0 and no_result >= 0")
	}
	nrrAllOutFullQuota, err := strconv.ParseBool(getEnv("STANDINGS_NRR_ALL_OUT_FULL_QUOTA", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_NRR_ALL_OUT_FULL_QUOTA: %w", err)
	}
	rebuildWorkers, err := getEnvAsInt("STANDINGS_REBUILD_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_REBUILD_WORKERS: %w", err)
	}
	if rebuildWorkers < 1 {
		return Config{}, fmt.Errorf("STANDINGS_REBUILD_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "cricket-scoring-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                        strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MetricsEnabled:               metricsEnabled,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		InternalJobToken:             strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		WebhookEnabled:               webhookURL != "",
		WebhookURL:                   webhookURL,
		WebhookSecret:                webhookSecret,
		WebhookTimeout:               webhookTimeout,
		WebhookRetries:               webhookRetries,
		WebhookRetryBackoff:          webhookRetryBackoff,
		WebhookCircuitEnabled:        webhookCircuitEnabled,
		WebhookCircuitFailureCount:   webhookCircuitFailureCount,
		WebhookCircuitOpenTimeout:    webhookCircuitOpenTimeout,
		WebhookCircuitHalfOpenMaxReq: webhookCircuitHalfOpenMaxReq,
		PointsWin:                    pointsWin,
		PointsTie:                    pointsTie,
		PointsLoss:                   pointsLoss,
		PointsNoResult:               pointsNoResult,
		NRRAllOutUsesFullQuota:       nrrAllOutFullQuota,
		RebuildWorkers:               rebuildWorkers,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
