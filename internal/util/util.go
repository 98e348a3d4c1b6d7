package util

import (
	"fmt"
	"os"
	"strings"
)

// GetEnvOrDefault returns the value of the environment variable env, or defaultVal if it is unset
func GetEnvOrDefault(env, defaultVal string) string {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal
	}
	return e
}

// FormatMultiError formats multierrors for logging
func FormatMultiError(merrs []error) string {
	var msg strings.Builder
	for i := 0; i < len(merrs); i++ {
		fmt.Fprintf(&msg, "%+v\n", merrs[i])
	}
	return msg.String()
}
