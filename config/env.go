package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(envVar string, defaultValue int) (int, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

func getBool(envVar string, defaultValue bool) (bool, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(raw)
}

func getFloat(envVar string, defaultValue float64) (float64, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func getDuration(envVar string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(raw)
}

// getMap parses "key=value,key2=value2". Pairs without "=" are ignored.
func getMap(envVar string) map[string]string {
	raw := os.Getenv(envVar)
	if raw == "" {
		return nil
	}
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}
