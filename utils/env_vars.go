package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envValue interface {
	~string | ~int | ~bool | ~float64
}

// GetEnv reads an environment variable and parses it into the type of the default value. An
// unset or empty variable yields the default. A value that cannot be parsed is a fatal
// configuration error.
func GetEnv[T envValue](envVar string, defaultValue T) T {
	value, ok := os.LookupEnv(envVar)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := parseEnv[T](value)
	if err != nil {
		log.Fatalf("environment variable %s is not valid: %s", envVar, err)
	}
	return parsed
}

func GetRequiredEnv[T envValue](envVar string) T {
	value, ok := os.LookupEnv(envVar)
	if !ok || value == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	parsed, err := parseEnv[T](value)
	if err != nil {
		log.Fatalf("environment variable %s is not valid: %s", envVar, err)
	}
	return parsed
}

// GetDurationEnv reads a number of seconds.
func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	return time.Duration(GetEnv(envVar, int(defaultValue.Seconds()))) * time.Second
}

func parseEnv[T envValue](value string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = value
	case *int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return out, fmt.Errorf("'%s' is not an integer", value)
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return out, fmt.Errorf("'%s' cannot be converted to bool", value)
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return out, fmt.Errorf("'%s' is not a number", value)
		}
		*p = v
	default:
		return out, fmt.Errorf("unsupported type %T", out)
	}
	return out, nil
}
