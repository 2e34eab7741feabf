package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/titanous/json5"
)

const (
	defaultBaseURL = "https://www.lzvcup.be"
	defaultAreas   = "VLAAMS BRABANT=results/5"
)

// Config stores runtime configuration for the scraper.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string

	BaseURL string        `validate:"required,url"`
	Areas   []league.Area `validate:"required,min=1,dive"`

	RequestTimeout          time.Duration `validate:"gt=0"`
	MaxRetries              int           `validate:"gte=0"`
	RetryBaseBackoff        time.Duration `validate:"gt=0"`
	RetryMaxBackoff         time.Duration `validate:"gtefield=RetryBaseBackoff"`
	CircuitEnabled          bool
	CircuitFailureCount     int           `validate:"gt=0"`
	CircuitOpenTimeout      time.Duration `validate:"gt=0"`
	CircuitHalfOpenMaxReq   int           `validate:"gt=0"`
	HistoryWorkers          int           `validate:"gt=0"`
	DBURL                   string
	DBDisablePreparedBinary bool
	StoreEnabled            bool
	ExportDir               string

	GeocodeEnabled   bool
	GeocodeURL       string  `validate:"omitempty,url"`
	GeocodeUserAgent string  `validate:"required_if=GeocodeEnabled true"`
	GeocodeRPS       float64 `validate:"gt=0"`
	GeocodeCacheFile string
	GeocodeRedisURL  string
	GeocodeCacheTTL  time.Duration `validate:"gte=0"`

	LevelMarkers level.Markers

	LogLevel  logging.Level
	LogFormat string `validate:"oneof=json console"`
	LogFile   string

	UptraceEnabled             bool
	UptraceDSN                 string `validate:"required_if=UptraceEnabled true"`
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration `validate:"gt=0"`
	PyroscopeProfileTypes      []string      `validate:"required_if=PyroscopeEnabled true,dive,oneof=cpu inuse_objects alloc_objects inuse_space alloc_space goroutines mutex_count mutex_duration block_count block_duration"`
}

// areasFile is the JSON5 document named by AREAS_FILE. The list keeps the
// scrape order.
type areasFile struct {
	BaseURL string `json:"base_url"`
	Areas   []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"areas"`
}

var validate = validator.New()

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "lzvcup-scraper"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		BaseURL:        strings.TrimRight(strings.TrimSpace(getEnv("LZV_BASE_URL", defaultBaseURL)), "/"),
		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
		ExportDir:      strings.TrimSpace(getEnv("EXPORT_DIR", "")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat(appEnv))),
		LogFile:        strings.TrimSpace(getEnv("LOG_FILE", "")),
		LogLevel:       logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if path := strings.TrimSpace(getEnv("AREAS_FILE", "")); path != "" {
		baseURL, areas, err := loadAreasFile(path)
		if err != nil {
			return Config{}, err
		}
		if baseURL != "" {
			cfg.BaseURL = strings.TrimRight(baseURL, "/")
		}
		cfg.Areas = areas
	} else {
		areas, err := parseAreas(getEnv("AREAS", defaultAreas))
		if err != nil {
			return Config{}, fmt.Errorf("parse AREAS: %w", err)
		}
		cfg.Areas = areas
	}
	for i := range cfg.Areas {
		resolved, err := resolveAreaURL(cfg.BaseURL, cfg.Areas[i].URL)
		if err != nil {
			return Config{}, fmt.Errorf("area %q: %w", cfg.Areas[i].Name, err)
		}
		cfg.Areas[i].URL = resolved
	}

	if cfg.RequestTimeout, err = time.ParseDuration(getEnv("LZV_TIMEOUT", "20s")); err != nil {
		return Config{}, fmt.Errorf("parse LZV_TIMEOUT: %w", err)
	}
	if cfg.MaxRetries, err = getEnvAsInt("LZV_MAX_RETRIES", 3); err != nil {
		return Config{}, fmt.Errorf("parse LZV_MAX_RETRIES: %w", err)
	}
	if cfg.RetryBaseBackoff, err = time.ParseDuration(getEnv("LZV_RETRY_BASE_BACKOFF", "500ms")); err != nil {
		return Config{}, fmt.Errorf("parse LZV_RETRY_BASE_BACKOFF: %w", err)
	}
	if cfg.RetryMaxBackoff, err = time.ParseDuration(getEnv("LZV_RETRY_MAX_BACKOFF", "8s")); err != nil {
		return Config{}, fmt.Errorf("parse LZV_RETRY_MAX_BACKOFF: %w", err)
	}
	if cfg.CircuitEnabled, err = strconv.ParseBool(getEnv("LZV_CIRCUIT_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse LZV_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.CircuitFailureCount, err = getEnvAsInt("LZV_CIRCUIT_FAILURE_COUNT", 8); err != nil {
		return Config{}, fmt.Errorf("parse LZV_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.CircuitOpenTimeout, err = time.ParseDuration(getEnv("LZV_CIRCUIT_OPEN_TIMEOUT", "30s")); err != nil {
		return Config{}, fmt.Errorf("parse LZV_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.CircuitHalfOpenMaxReq, err = getEnvAsInt("LZV_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return Config{}, fmt.Errorf("parse LZV_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.HistoryWorkers, err = getEnvAsInt("HISTORY_WORKERS", 10); err != nil {
		return Config{}, fmt.Errorf("parse HISTORY_WORKERS: %w", err)
	}

	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "true")); err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}
	if cfg.StoreEnabled, err = strconv.ParseBool(getEnv("STORE_ENABLED", strconv.FormatBool(cfg.DBURL != ""))); err != nil {
		return Config{}, fmt.Errorf("parse STORE_ENABLED: %w", err)
	}
	if cfg.StoreEnabled && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_ENABLED=true")
	}

	if cfg.GeocodeEnabled, err = strconv.ParseBool(getEnv("GEOCODE_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse GEOCODE_ENABLED: %w", err)
	}
	cfg.GeocodeURL = strings.TrimSpace(getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"))
	cfg.GeocodeUserAgent = strings.TrimSpace(getEnv("GEOCODE_USER_AGENT", "lzvcup-scraper"))
	if cfg.GeocodeRPS, err = strconv.ParseFloat(getEnv("GEOCODE_RPS", "1"), 64); err != nil {
		return Config{}, fmt.Errorf("parse GEOCODE_RPS: %w", err)
	}
	cfg.GeocodeCacheFile = strings.TrimSpace(getEnv("GEOCODE_CACHE_FILE", ".cache/geocode.json"))
	cfg.GeocodeRedisURL = strings.TrimSpace(getEnv("GEOCODE_REDIS_URL", ""))
	if cfg.GeocodeCacheTTL, err = time.ParseDuration(getEnv("GEOCODE_CACHE_TTL", "0s")); err != nil {
		return Config{}, fmt.Errorf("parse GEOCODE_CACHE_TTL: %w", err)
	}

	markers := level.DefaultMarkers()
	markers.Women = getEnv("LEVEL_MARKER_WOMEN", markers.Women)
	markers.Veterans = getEnv("LEVEL_MARKER_VETERANS", markers.Veterans)
	markers.TopTier = getEnv("LEVEL_MARKER_TOP", markers.TopTier)
	if raw := strings.TrimSpace(getEnv("LEVEL_MARKER_BOTTOM", "")); raw != "" {
		parts := splitCSV(raw)
		if len(parts) != 2 {
			return Config{}, fmt.Errorf("LEVEL_MARKER_BOTTOM needs exactly 2 values, got %d", len(parts))
		}
		markers.BottomTiers = [2]string{parts[0], parts[1]}
	}
	cfg.LevelMarkers = markers

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = getEnv("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = getEnv("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeProfileTypes = splitCSV(getEnv("PYROSCOPE_PROFILE_TYPES", "cpu,alloc_objects,alloc_space,inuse_space,goroutines"))
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultLogFormat(appEnv string) string {
	if appEnv == EnvDev {
		return logging.FormatConsole
	}
	return logging.FormatJSON
}

func loadAreasFile(path string) (string, []league.Area, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read AREAS_FILE: %w", err)
	}

	var doc areasFile
	if err := json5.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("parse AREAS_FILE %s: %w", path, err)
	}

	areas := make([]league.Area, 0, len(doc.Areas))
	seen := make(map[string]struct{}, len(doc.Areas))
	for _, item := range doc.Areas {
		name := strings.TrimSpace(item.Name)
		if name == "" || strings.TrimSpace(item.URL) == "" {
			return "", nil, fmt.Errorf("AREAS_FILE %s: area needs a name and url", path)
		}
		if _, dup := seen[name]; dup {
			return "", nil, fmt.Errorf("AREAS_FILE %s: duplicate area %q", path, name)
		}
		seen[name] = struct{}{}
		areas = append(areas, league.Area{Name: name, URL: strings.TrimSpace(item.URL)})
	}
	return strings.TrimSpace(doc.BaseURL), areas, nil
}

// parseAreas reads "NAME=url,NAME=url" keeping the given order.
func parseAreas(raw string) ([]league.Area, error) {
	items := splitCSV(raw)
	out := make([]league.Area, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		name, target, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid area %q, expected NAME=url", item)
		}
		name = strings.TrimSpace(name)
		target = strings.TrimSpace(target)
		if name == "" || target == "" {
			return nil, fmt.Errorf("invalid area %q, expected NAME=url", item)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate area %q", name)
		}
		seen[name] = struct{}{}
		out = append(out, league.Area{Name: name, URL: target})
	}
	return out, nil
}

func resolveAreaURL(baseURL, target string) (string, error) {
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return "", fmt.Errorf("parse area url: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
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
