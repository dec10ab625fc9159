package env

import (
	"fmt"
	"os"
)

const (
	DatabaseURL    = "DATABASE_URL"
	UploadEndpoint = "UPLOAD_ENDPOINT"
	RestHost       = "REST_HOST"
	FSRootPath     = "FS_ROOT_PATH"
	MaxAttempts    = "MAX_ATTEMPTS"
	MaxPayloadSize = "MAX_PAYLOAD_SIZE"
	LogJSON        = "LOG_JSON"
)

func NewErrNotSet(env string) error {
	return fmt.Errorf("env %s isn't set", env)
}

func Get(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", NewErrNotSet(key)
	}
	return value, nil
}

func GetOptional(key string, optional string) string {
	value := os.Getenv(key)
	if value == "" {
		return optional
	}
	return value
}
