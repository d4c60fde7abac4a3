package logger_adapter

import "strings"

var sensitiveKeys = map[string]bool{
	"phone":    true,
	"password": true,
	"token":    true,
}

func isSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// maskValue keeps the last two characters so operators can still correlate entries.
func maskValue(v string) string {
	if len(v) <= 2 {
		return "**"
	}
	return strings.Repeat("*", len(v)-2) + v[len(v)-2:]
}
