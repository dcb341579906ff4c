package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type parsableEnvVar interface {
	string | int | bool | time.Duration
}

func parseEnvValue[T parsableEnvVar](envVarName, envValue string) T {
	var value any
	var zero T

	switch any(zero).(type) {
	case string:
		value = envValue
	case int:
		intValue, err := strconv.Atoi(envValue)
		if err != nil {
			panic(fmt.Sprintf("Environment variable %s is not valid: '%s' is not an integer", envVarName, envValue))
		}
		value = intValue
	case bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			panic(fmt.Sprintf("Environment variable %s is not valid: '%s' is not a boolean", envVarName, envValue))
		}
		value = boolValue
	case time.Duration:
		durationValue, err := time.ParseDuration(envValue)
		if err != nil {
			panic(fmt.Sprintf("Environment variable %s is not valid: '%s' is not a duration", envVarName, envValue))
		}
		value = durationValue
	}

	return value.(T)
}

// GetEnv returns the value of the environment variable, or the provided
// default when it is unset or empty.
func GetEnv[T parsableEnvVar](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	return parseEnvValue[T](envVarName, envValue)
}

// GetRequiredEnv exits the process when the environment variable is unset.
func GetRequiredEnv[T parsableEnvVar](envVarName string) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVarName)
	}
	return parseEnvValue[T](envVarName, envValue)
}
