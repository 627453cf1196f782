package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/camp-sdk/pkg/logging"
	"github.com/iota-uz/camp-sdk/pkg/transform"
)

const (
	Production = "production"

	RLSDisabled = "disabled"
	RLSEnforce  = "enforce"

	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var defaultEnvFiles = []string{".env", ".env.local"}

var singleton = sync.OnceValues(func() (*Configuration, error) {
	return Load(defaultEnvFiles)
})

var validate = validator.New()

// LoadEnv loads the env files that exist in the working directory. When none
// does, it retries from the enclosing module root (the first parent holding a
// go.mod), so tests run from package dirs still see the repo's .env files.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles("", envFiles)
	if len(existing) == 0 {
		if root, ok := moduleRoot(); ok {
			existing = existingFiles(root, envFiles)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(dir string, files []string) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		path := file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"camp"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"camp-seed"`
}

// SeedOptions drive the records import.
type SeedOptions struct {
	WorkbookPath           string `env:"SEED_WORKBOOK_PATH" envDefault:"data/camp-records.xlsx" validate:"required"`
	SeasonYear             int    `env:"SEED_SEASON_YEAR" envDefault:"2025" validate:"min=2000,max=2100"`
	SeasonName             string `env:"SEED_SEASON_NAME"`
	TenantID               string `env:"SEED_TENANT_ID" envDefault:"00000000-0000-0000-0000-000000000001" validate:"required,uuid"`
	AliasFile              string `env:"SEED_ALIAS_FILE"`
	PlaceholderEmailDomain string `env:"SEED_PLACEHOLDER_EMAIL_DOMAIN" envDefault:"placeholder.invalid" validate:"required,hostname"`
	Currency               string `env:"SEED_CURRENCY" envDefault:"USD" validate:"required,len=3"`
	StoreBackend           string `env:"SEED_STORE_BACKEND" envDefault:"postgres" validate:"oneof=postgres memory"`
	WarningPreview         int    `env:"SEED_WARNING_PREVIEW" envDefault:"10" validate:"min=0"`
	MetricsTextfile        string `env:"SEED_METRICS_TEXTFILE"`
}

func (s *SeedOptions) Validate() error {
	s.StoreBackend = strings.ToLower(strings.TrimSpace(s.StoreBackend))
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("seed configuration error: %w", err)
	}
	if !transform.KnownCurrency(s.Currency) {
		return fmt.Errorf("seed configuration error: unknown SEED_CURRENCY=%q", s.Currency)
	}
	return nil
}

// Tenant is the parsed SEED_TENANT_ID; only valid after Validate.
func (s *SeedOptions) Tenant() uuid.UUID {
	return uuid.MustParse(s.TenantID)
}

type Configuration struct {
	Database      DatabaseOptions
	OpenTelemetry OpenTelemetryOptions
	Seed          SeedOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	// Empty means stderr only.
	LogPath string `env:"LOG_PATH"`

	// RLS enforcement mode (disabled/enforce).
	RLSEnforce string `env:"RLS_ENFORCE" envDefault:"disabled"`

	logFile *os.File
	logger  *logrus.Logger
}

// Load reads envFiles and the process environment into a fresh
// Configuration. Most callers want Use.
func Load(envFiles []string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		c.Unload()
		return nil, err
	}
	return c, nil
}

// Init returns the process-wide configuration, loading it on first use.
func Init() (*Configuration, error) {
	return singleton()
}

func Use() *Configuration {
	c, err := singleton()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Seed.Validate(); err != nil {
		return err
	}
	if err := c.validateRLS(); err != nil {
		return err
	}

	if c.LogPath != "" {
		f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
		if err != nil {
			return err
		}
		c.logFile = f
		c.logger = logger
	} else {
		c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
	}

	c.Database.Opts = c.Database.ConnectionString()
	return nil
}

func (c *Configuration) validateRLS() error {
	mode := strings.ToLower(strings.TrimSpace(c.RLSEnforce))
	if mode == "" {
		mode = RLSDisabled
	}
	switch mode {
	case RLSDisabled, RLSEnforce:
	default:
		return fmt.Errorf("invalid RLS_ENFORCE=%q (expected disabled|enforce)", c.RLSEnforce)
	}

	if mode == RLSEnforce && strings.EqualFold(strings.TrimSpace(c.Database.User), "postgres") {
		return fmt.Errorf("RLS_ENFORCE=enforce requires a non-superuser DB_USER (postgres will bypass RLS)")
	}

	c.RLSEnforce = mode
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
