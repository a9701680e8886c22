// Package config reads service settings from the environment, after an
// optional .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	AdminPort string

	// DatasetPath is a JSON/gob file or a directory. Empty means the built-in
	// Cairo dataset.
	DatasetPath string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
	S3Bucket    string
	S3Object    string

	DatabaseURL  string
	HistoryLimit int

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	AMQPURL       string
	DispatchQueue string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
}

// LoadEnv loads .env if present. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func Load() *Config {
	return &Config{
		Port:      getenv("PORT", "5000"),
		AdminPort: getenv("ADMIN_PORT", "5001"),

		DatasetPath: getenv("DATASET_PATH", ""),

		S3Endpoint:  getenv("S3_ENDPOINT", ""),
		S3AccessKey: getenv("S3_ACCESS_KEY", ""),
		S3SecretKey: getenv("S3_SECRET_KEY", ""),
		S3UseSSL:    getenv("S3_USE_SSL", "false") == "true",
		S3Bucket:    getenv("S3_BUCKET", "city-datasets"),
		S3Object:    getenv("S3_OBJECT", "cairo.gob"),

		DatabaseURL:  getenv("DATABASE_URL", ""),
		HistoryLimit: atoiDefault(getenv("HISTORY_LIMIT", "20"), 20),

		KafkaBrokers: splitList(getenv("KAFKA_BROKERS", "")),
		KafkaTopic:   getenv("KAFKA_TRAFFIC_TOPIC", "traffic-readings"),
		KafkaGroupID: getenv("KAFKA_GROUP_ID", "city-planner"),

		AMQPURL:       getenv("AMQP_URL", ""),
		DispatchQueue: getenv("DISPATCH_QUEUE", "emergency_dispatch"),

		Neo4jURI:      getenv("NEO4J_URI", ""),
		Neo4jUser:     getenv("NEO4J_USERNAME", "neo4j"),
		Neo4jPassword: getenv("NEO4J_PASSWORD", ""),
	}
}

func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func atoiDefault(s string, d int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return i
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
