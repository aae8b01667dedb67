package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath           = "."
	defaultDefaultService = "Classic Haircut"
	defaultCalComBaseURL  = "https://api.cal.com/v1"
	defaultReminderWindow = 5
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Worker is the reminder job server; it falls back to HTTP.Port+1
	// when unset.
	Worker struct {
		Port int `json:"port" yaml:"port"`
	} `json:"worker" yaml:"worker"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres"`

	// Auth verifies access tokens issued by the external auth platform.
	Auth *AuthConfig `json:"auth" yaml:"auth"`

	CalCom *CalComConfig `json:"calcom" yaml:"calcom"`

	Stripe *StripeConfig `json:"stripe" yaml:"stripe"`

	Push *PushConfig `json:"push" yaml:"push"`

	// Firebase enables the FCM delivery channel for subscriptions saved
	// with the fcm provider. Optional.
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	Mail *MailConfig `json:"mail" yaml:"mail"`

	Booking BookingConfig `json:"booking" yaml:"booking"`

	Reminders RemindersConfig `json:"reminders" yaml:"reminders"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PostgresConfig defines the database connection.
type PostgresConfig struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port"`
	Username        string        `json:"username" yaml:"username"`
	Password        string        `json:"password" yaml:"password"`
	Database        string        `json:"database" yaml:"database"`
	SSLMode         string        `json:"sslMode" yaml:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

// AuthConfig holds the shared secret for verifying the platform's HS256
// access tokens.
type AuthConfig struct {
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`
}

// CalComConfig defines the external scheduling provider integration.
type CalComConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey" yaml:"apiKey"`
	// OwnerEmail identifies the shop's own attendee entry in webhook
	// payloads; the other attendee is the customer.
	OwnerEmail string `json:"ownerEmail" yaml:"ownerEmail"`
	// WebhookSecret enables HMAC verification of inbound webhooks when set.
	WebhookSecret string        `json:"webhookSecret" yaml:"webhookSecret"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
}

// StripeConfig defines the payment provider webhook verification.
type StripeConfig struct {
	WebhookSecret string `json:"webhookSecret" yaml:"webhookSecret"`
}

// PushConfig holds the VAPID key pair for web push delivery.
type PushConfig struct {
	VAPIDPublicKey  string        `json:"vapidPublicKey" yaml:"vapidPublicKey"`
	VAPIDPrivateKey string        `json:"vapidPrivateKey" yaml:"vapidPrivateKey"`
	Subscriber      string        `json:"subscriber" yaml:"subscriber"` // mailto: contact required by VAPID
	SendTimeout     time.Duration `json:"sendTimeout" yaml:"sendTimeout"`
}

// FirebaseConfig defines Firebase credentials for FCM delivery.
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// MailConfig defines the transactional email provider.
type MailConfig struct {
	APIKey     string `json:"apiKey" yaml:"apiKey"`
	From       string `json:"from" yaml:"from"`
	AdminEmail string `json:"adminEmail" yaml:"adminEmail"`
}

// BookingConfig tunes the ingestion pipeline.
type BookingConfig struct {
	// DefaultService is the catalog name used when the matcher finds no
	// candidate for a free-text title.
	DefaultService string `json:"defaultService" yaml:"defaultService"`
}

// RemindersConfig tunes the reminder scan.
type RemindersConfig struct {
	// WindowMinutes is the half-width of the match window around each
	// reminder offset.
	WindowMinutes int `json:"windowMinutes" yaml:"windowMinutes"`
}

// RateLimitConfig throttles unauthenticated public endpoints per client IP.
type RateLimitConfig struct {
	RPS   float64 `json:"rps" yaml:"rps"`
	Burst int     `json:"burst" yaml:"burst"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: CALCOM_APIKEY -> calcom.apiKey (not calcom.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Booking.DefaultService) == "" {
		cfg.Booking.DefaultService = defaultDefaultService
	}
	if cfg.Reminders.WindowMinutes <= 0 {
		cfg.Reminders.WindowMinutes = defaultReminderWindow
	}
	if cfg.Worker.Port == 0 {
		cfg.Worker.Port = cfg.HTTP.Port + 1
	}
	if cfg.CalCom != nil {
		if strings.TrimSpace(cfg.CalCom.BaseURL) == "" {
			cfg.CalCom.BaseURL = defaultCalComBaseURL
		}
		if cfg.CalCom.Timeout <= 0 {
			cfg.CalCom.Timeout = 10 * time.Second
		}
	}
	if cfg.Push != nil && cfg.Push.SendTimeout <= 0 {
		cfg.Push.SendTimeout = 10 * time.Second
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
