package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

// LoggerConfig controls what the request logger records
type LoggerConfig struct {
	EnableColors   bool
	LogRequestBody bool
	MaxBodySize    int64 // max body size to log, in bytes
	SkipPaths      []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors:   true,
		LogRequestBody: true,
		MaxBodySize:    2048,
		SkipPaths:      []string{"/health", "/ws", "/ws/admin"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range config.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		start := time.Now()
		method := c.Request.Method
		ip := c.ClientIP()
		query := c.Request.URL.RawQuery

		var requestBody string
		if config.LogRequestBody && c.Request.Body != nil && c.Request.ContentLength > 0 {
			if c.Request.ContentLength > config.MaxBodySize {
				requestBody = "[body too large to log]"
			} else if bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, config.MaxBodySize)); err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				requestBody = sanitizeBody(string(bodyBytes), c.ContentType())
			}
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		var methodColor, statusColor, reset string
		if config.EnableColors {
			methodColor = colorForMethod(method)
			statusColor = colorForStatus(status)
			reset = colorReset
		}

		log.Printf("%s%s%s %s%s%s %s[%d]%s %v from %s",
			methodColor, method, reset,
			colorBlue, path, reset,
			statusColor, status, reset,
			latency, ip)

		if query != "" {
			log.Printf("%s    query:%s %s", colorGray, reset, truncate(query, 100))
		}
		if requestBody != "" {
			log.Printf("%s    body:%s %s", colorGray, reset, requestBody)
		}
		if admin := c.GetString("adminUsername"); admin != "" {
			log.Printf("%s    admin:%s %s", colorGray, reset, admin)
		}
	}
}

func colorForMethod(method string) string {
	switch method {
	case "GET":
		return colorGreen
	case "POST":
		return colorBlue
	case "PUT":
		return colorYellow
	case "DELETE":
		return colorRed
	case "PATCH":
		return colorPurple
	default:
		return colorWhite
	}
}

func colorForStatus(status int) string {
	switch {
	case status >= 200 && status < 300:
		return colorGreen
	case status >= 400 && status < 500:
		return colorYellow
	case status >= 500:
		return colorRed
	default:
		return colorWhite
	}
}

// sanitizeBody masks credential fields in JSON payloads before logging
func sanitizeBody(body, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	if strings.Contains(contentType, "application/json") {
		var data interface{}
		if json.Unmarshal([]byte(body), &data) == nil {
			if formatted, err := json.Marshal(maskSensitive(data)); err == nil {
				return truncate(string(formatted), 200)
			}
		}
	}
	if strings.Contains(contentType, "multipart/form-data") {
		return "[multipart form]"
	}

	return truncate(body, 200)
}

func maskSensitive(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitiveField(strings.ToLower(key)) {
				result[key] = "********"
			} else {
				result[key] = maskSensitive(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = maskSensitive(item)
		}
		return result
	default:
		return v
	}
}

func isSensitiveField(field string) bool {
	sensitive := []string{"password", "token", "secret", "secretword"}
	for _, s := range sensitive {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
