package config

import (
	"os"
	"strconv"
	"strings"
)

func stringLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func intLookup(key string) (int, bool) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, false
	}
	return value, true
}

func boolLookup(key string) (bool, bool) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, false
	}
	return value, true
}

func stringsLookup(key string) ([]string, bool) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return nil, false
	}
	return strings.Split(valueStr, ","), true
}
