package config

import "os"

// ServiceConfig holds the runtime configuration for the voice lead service
type ServiceConfig struct {
	Port string

	// External voice platform (Vapi-compatible) configuration
	VapiAPIKey        string
	VapiBaseURL       string
	VapiPhoneNumberID string // fallback outbound line when a tenant has none

	// Notification sender configuration
	ResendAPIKey string
	NotifyFrom   string

	// Auth configuration for dashboard/trigger endpoints
	SecretKey string

	// Redis cache for the assistant-request organization lookup
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// CORS toggle for dashboard origins
	EnableCORS bool

	// Instance identifier for multi-pod monitoring
	InstanceID string
}

// LoadServiceConfigFromEnv builds the service configuration from environment
// variables with sensible defaults for local development.
func LoadServiceConfigFromEnv() *ServiceConfig {
	return &ServiceConfig{
		Port:              getEnvOrDefault("PORT", "8080"),
		VapiAPIKey:        os.Getenv("VAPI_API_KEY"),
		VapiBaseURL:       os.Getenv("VAPI_BASE_URL"),
		VapiPhoneNumberID: os.Getenv("VAPI_PHONE_NUMBER_ID"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		NotifyFrom:        getEnvOrDefault("NOTIFY_FROM", "Thavon <notifications@thavon.app>"),
		SecretKey:         os.Getenv("SECRET_KEY"),
		RedisHost:         getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:         getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		EnableCORS:        getEnvOrDefault("ENABLE_CORS", "true") == "true",
		InstanceID:        getEnvOrDefault("INSTANCE_ID", "default-pod"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
