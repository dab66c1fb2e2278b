package util

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

type configValue struct {
	envVarName   string
	required     bool
	errorMessage string
	defaultValue string
	Value        string
}

// Int parses the value as an integer, falling back to def when unset or malformed.
func (v *configValue) Int(def int) int {
	if v.Value == "" {
		return def
	}

	n, err := strconv.Atoi(v.Value)
	if err != nil {
		return def
	}

	return n
}

type Config struct {
	TourApiKey         configValue
	TourApiBaseUrl     configValue
	DbConnectionString configValue
	SeqUrl             configValue
	SeqToken           configValue
	Environment        configValue
	DelayMs            configValue
	BatchSize          configValue
	MaxPages           configValue
	RequestTimeoutS    configValue
}

func NewConfig() *Config {
	const tourApiKeyName = "TOUR_API_KEY"
	const tourApiBaseUrlName = "TOUR_API_BASE_URL"
	const dbConnectionStringName = "DB_CONNECTION_STRING"
	const seqUrlName = "SEQ_URL"
	const seqTokenName = "SEQ_TOKEN"
	const environmentName = "ENVIRONMENT"
	const delayMsName = "DELAY_MS"
	const batchSizeName = "BATCH_SIZE"
	const maxPagesName = "MAX_PAGES"
	const requestTimeoutName = "REQUEST_TIMEOUT_S"

	return &Config{
		TourApiKey: configValue{
			envVarName:   tourApiKeyName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s is set to a data.go.kr service key", tourApiKeyName),
		},
		TourApiBaseUrl: configValue{
			envVarName:   tourApiBaseUrlName,
			required:     false,
			defaultValue: "https://apis.data.go.kr/B551011/KorService1",
		},
		DbConnectionString: configValue{
			envVarName:   dbConnectionStringName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s is set and in DSN format", dbConnectionStringName),
		},
		SeqUrl: configValue{
			envVarName: seqUrlName,
			required:   false,
		},
		SeqToken: configValue{
			envVarName: seqTokenName,
			required:   false,
		},
		Environment: configValue{
			envVarName:   environmentName,
			required:     false,
			defaultValue: "development",
		},
		DelayMs: configValue{
			envVarName:   delayMsName,
			required:     false,
			defaultValue: "1000",
		},
		BatchSize: configValue{
			envVarName:   batchSizeName,
			required:     false,
			defaultValue: "50",
		},
		MaxPages: configValue{
			envVarName:   maxPagesName,
			required:     false,
			defaultValue: "200",
		},
		RequestTimeoutS: configValue{
			envVarName:   requestTimeoutName,
			required:     false,
			defaultValue: "30",
		},
	}
}

var config *Config

func GetConfig() *Config {
	if config == nil {
		return load()
	}

	return config
}

func load() *Config {
	config := NewConfig()

	values := []*configValue{
		&config.TourApiKey,
		&config.TourApiBaseUrl,
		&config.DbConnectionString,
		&config.SeqUrl,
		&config.SeqToken,
		&config.Environment,
		&config.DelayMs,
		&config.BatchSize,
		&config.MaxPages,
		&config.RequestTimeoutS,
	}

	for _, v := range values {
		if err := populateEnv(v); err != nil {
			log.Fatal(err)
		}
	}

	return config
}

func populateEnv(m *configValue) (err error) {
	v := os.Getenv(m.envVarName)

	if v == "" && m.required {
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}

		return fmt.Errorf("environment variable %s is not set", m.envVarName)
	}

	if v == "" && m.defaultValue != "" {
		m.Value = m.defaultValue
		return nil
	}

	m.Value = v
	return nil
}
