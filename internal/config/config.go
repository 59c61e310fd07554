package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/omarvega/rescuehq/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	UptraceEnabled              bool
	UptraceDSN                  string
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	MarvelBaseURL               string
	MarvelPublicKey             string
	MarvelPrivateKey            string
	MarvelTimeout               time.Duration
	MarvelMaxRetries            int
	MarvelCircuitEnabled        bool
	MarvelCircuitFailureCount   int
	MarvelCircuitOpenTimeout    time.Duration
	MarvelCircuitHalfOpenMaxReq int
	PDFRendererBaseURL          string
	PDFRendererTimeout          time.Duration
	LogLevel                    logging.Level
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

	marvelPublicKey := strings.TrimSpace(getEnv("MARVEL_PUBLIC_KEY", ""))
	marvelPrivateKey := strings.TrimSpace(getEnv("MARVEL_PRIVATE_KEY", ""))
	if marvelPublicKey == "" {
		return Config{}, fmt.Errorf("MARVEL_PUBLIC_KEY is required")
	}
	if marvelPrivateKey == "" {
		return Config{}, fmt.Errorf("MARVEL_PRIVATE_KEY is required")
	}
	marvelTimeout, err := time.ParseDuration(getEnv("MARVEL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MARVEL_TIMEOUT: %w", err)
	}
	if marvelTimeout <= 0 {
		return Config{}, fmt.Errorf("MARVEL_TIMEOUT must be > 0")
	}
	marvelMaxRetries, err := getEnvAsInt("MARVEL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse MARVEL_MAX_RETRIES: %w", err)
	}
	if marvelMaxRetries < 0 {
		return Config{}, fmt.Errorf("MARVEL_MAX_RETRIES must be >= 0")
	}
	marvelCircuitEnabled, err := strconv.ParseBool(getEnv("MARVEL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MARVEL_CIRCUIT_ENABLED: %w", err)
	}
	marvelCircuitFailureCount, err := getEnvAsInt("MARVEL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MARVEL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if marvelCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MARVEL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	marvelCircuitOpenTimeout, err := time.ParseDuration(getEnv("MARVEL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MARVEL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if marvelCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("MARVEL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	marvelCircuitHalfOpenMaxReq, err := getEnvAsInt("MARVEL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MARVEL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if marvelCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("MARVEL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pdfRendererBaseURL := strings.TrimSpace(getEnv("PDF_RENDERER_BASE_URL", "http://localhost:3000"))
	if pdfRendererBaseURL == "" {
		return Config{}, fmt.Errorf("PDF_RENDERER_BASE_URL cannot be empty")
	}
	pdfRendererTimeout, err := time.ParseDuration(getEnv("PDF_RENDERER_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PDF_RENDERER_TIMEOUT: %w", err)
	}
	if pdfRendererTimeout <= 0 {
		return Config{}, fmt.Errorf("PDF_RENDERER_TIMEOUT must be > 0")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "rescuehq-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		// An empty DB_URL keeps the service on the in-memory roster,
		// which is enough for local development and the test suite.
		DBURL:                       strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		MarvelBaseURL:               strings.TrimSpace(getEnv("MARVEL_BASE_URL", "https://gateway.marvel.com/v1/public")),
		MarvelPublicKey:             marvelPublicKey,
		MarvelPrivateKey:            marvelPrivateKey,
		MarvelTimeout:               marvelTimeout,
		MarvelMaxRetries:            marvelMaxRetries,
		MarvelCircuitEnabled:        marvelCircuitEnabled,
		MarvelCircuitFailureCount:   marvelCircuitFailureCount,
		MarvelCircuitOpenTimeout:    marvelCircuitOpenTimeout,
		MarvelCircuitHalfOpenMaxReq: marvelCircuitHalfOpenMaxReq,
		PDFRendererBaseURL:          pdfRendererBaseURL,
		PDFRendererTimeout:          pdfRendererTimeout,
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

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
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
