package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Default settings
const (
	DefaultPort          = 3318
	DefaultDatabaseType  = "sqlite"
	DefaultMongoDatabase = "formbuilder"
)

type Config struct {
	Port          int    `validate:"min=1,max=65535"`
	DatabaseURL   string `validate:"required"`
	DatabaseType  string `validate:"oneof=postgres sqlite"`
	JWTSecret     string `validate:"required"`
	MongoURI      string
	MongoDatabase string `validate:"required_with=MongoURI"`
	FormsFile     string `validate:"required_without=MongoURI"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseFlags reads flags, falls back to the environment (optionally seeded
// from a .env file), and validates the result.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("quickly-form", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	// Form definitions come from Mongo when a URI is set, else from a YAML file
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "", "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", "", "MongoDB database holding the forms collection")
	fs.StringVar(&cfg.FormsFile, "forms", "", "YAML file with form definitions")

	fs.StringVar(&envFile, "env", "", "Path to a .env file (default .env if present)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.DatabaseURL = fallback(cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	cfg.DatabaseType = fallback(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), DefaultDatabaseType)
	cfg.JWTSecret = fallback(cfg.JWTSecret, os.Getenv("JWT_SECRET"))
	cfg.MongoURI = fallback(cfg.MongoURI, os.Getenv("MONGO_URI"))
	cfg.MongoDatabase = fallback(cfg.MongoDatabase, os.Getenv("MONGO_DATABASE"), DefaultMongoDatabase)
	cfg.FormsFile = fallback(cfg.FormsFile, os.Getenv("FORMS_FILE"))

	if err := validate.Struct(cfg); err != nil {
		return Config{}, describe(err)
	}

	return cfg, nil
}

// loadEnvFile seeds unset variables from a .env file. An explicit path must
// exist; the default .env is optional.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Maps validator failures onto the names operators actually set.
var settingNames = map[string]string{
	"Port":          "PORT (-p)",
	"DatabaseURL":   "DATABASE_URL (-d)",
	"DatabaseType":  "DATABASE_TYPE (-t)",
	"JWTSecret":     "JWT_SECRET (--jwt-secret)",
	"MongoDatabase": "MONGO_DATABASE (--mongo-db)",
	"FormsFile":     "FORMS_FILE (--forms) or MONGO_URI (--mongo-uri)",
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := settingNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Errorf("%s required", name)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid (%s)", name, fe.Tag())
	}
}
