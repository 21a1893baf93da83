package observability

import (
	"github.com/uyeplus/app-campaign/internal/logging"
	"go.uber.org/zap"
)

// Logger returns the global logger instance
func Logger() *zap.Logger {
	return logging.Logger
}

// MaskIdentity masks a national identity number for logging
func MaskIdentity(identity string) string {
	if len(identity) != 11 {
		return "***********"
	}
	return identity[:3] + "*****" + identity[8:]
}

// MaskSensitiveData masks sensitive data in a map
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	sensitiveFields := []string{"identityNumber", "identity_number", "phone", "email", "full_name"}
	masked := make(map[string]interface{})

	for k, v := range data {
		if contains(sensitiveFields, k) {
			masked[k] = "********"
		} else {
			masked[k] = v
		}
	}

	return masked
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
