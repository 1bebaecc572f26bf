package config

import (
	"io"
	"log"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Message is the copy for one notification payload.
type Message struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Tag   string `yaml:"tag"`
}

// Messages holds the notification copy for each delivery occasion.
type Messages struct {
	Morning Message `yaml:"morning"`
	Evening Message `yaml:"evening"`
	Test    Message `yaml:"test"`
}

// ReminderDefaults are the trigger times used until the household configures its own.
type ReminderDefaults struct {
	Morning string `yaml:"morning"` // HH:MM, 24-hour
	Evening string `yaml:"evening"`
}

type Config struct {
	Port    string
	GinMode string

	// Firebase / Firestore
	FirebaseProjectID       string
	FirebaseCredentialsFile string

	// Web Push (VAPID)
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string // contact email announced to the push service
	PushTTLSeconds  int

	// Logging
	LogLevel  string
	LogFormat string

	// Settings below come from the optional YAML config file.
	Reminders ReminderDefaults `yaml:"reminders"`
	Messages  Messages         `yaml:"messages"`
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		FirebaseProjectID:       getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnvOrDefault("GOOGLE_APPLICATION_CREDENTIALS", ""),

		VAPIDPublicKey:  getEnvOrDefault("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnvOrDefault("VAPID_PRIVATE_KEY", ""),
		VAPIDSubscriber: getEnvOrDefault("VAPID_EMAIL", ""),
		PushTTLSeconds:  getEnvInt("PUSH_TTL_SECONDS", 60*60*24),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", ""),

		Reminders: ReminderDefaults{
			Morning: "06:30",
			Evening: "22:30",
		},
		Messages: DefaultMessages(),
	}

	// Load settings from the optional configuration file. Unlike the env
	// variables these have usable defaults, so a missing file is not fatal.
	configFilePath := getEnvOrDefault("CONFIG_FILE", "config.yaml")

	if configFile, err := os.Open(configFilePath); err != nil {
		log.Printf("No config file at %s, using built-in defaults", configFilePath)
	} else {
		defer configFile.Close()
		if err := LoadConfigFile(configFile, AppConfig); err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
	}

	if AppConfig.VAPIDPublicKey == "" || AppConfig.VAPIDPrivateKey == "" {
		log.Println("Warning: VAPID keys are missing; push delivery will fail. Set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY.")
	}
}

// DefaultMessages returns the built-in notification copy.
func DefaultMessages() Messages {
	return Messages{
		Morning: Message{
			Title: "Morning Routine Reminder",
			Body:  "Please ensure all your morning tasks are completed!",
			Tag:   "routine-reminder",
		},
		Evening: Message{
			Title: "Evening Routine Reminder",
			Body:  "Please ensure all your evening tasks are completed!",
			Tag:   "routine-reminder",
		},
		Test: Message{
			Title: "Routine Reminder",
			Body:  "You have incomplete tasks!",
			Tag:   "routine-reminder",
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d", key, value, defaultValue)
	}
	return defaultValue
}

func LoadConfigFile(reader io.Reader, config *Config) error {
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(config); err != nil {
		return err
	}

	return nil
}
