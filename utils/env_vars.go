package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type EnvVar interface {
	~string | ~int | ~bool
}

// GetEnv reads an environment variable and converts it to the type of the
// default value. An unset or empty variable yields the default.
func GetEnv[T EnvVar](name string, defaultValue T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}

	value, err := convertEnv[T](raw)
	if err != nil {
		log.Fatalf("environment variable %s is not valid: %v", name, err)
	}
	return value
}

// GetRequiredEnv reads an environment variable and exits the process when it
// is unset, empty or not convertible to T.
func GetRequiredEnv[T EnvVar](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", name)
	}

	value, err := convertEnv[T](raw)
	if err != nil {
		log.Fatalf("environment variable %s is not valid: %v", name, err)
	}
	return value
}

func convertEnv[T EnvVar](raw string) (T, error) {
	var zero T

	switch any(zero).(type) {
	case string:
		return any(raw).(T), nil
	case int:
		intValue, err := strconv.Atoi(raw)
		if err != nil {
			return zero, fmt.Errorf("'%s' is not an integer", raw)
		}
		return any(intValue).(T), nil
	case bool:
		boolValue, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, fmt.Errorf("'%s' is not a boolean", raw)
		}
		return any(boolValue).(T), nil
	default:
		return zero, fmt.Errorf("unsupported environment variable type %T", zero)
	}
}
