package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ADMIN_PORT", "HISTORY_LIMIT", "KAFKA_BROKERS", "S3_ENDPOINT"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "5000" || cfg.AdminPort != "5001" {
		t.Errorf("ports = %s/%s", cfg.Port, cfg.AdminPort)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("history limit = %d", cfg.HistoryLimit)
	}
	if cfg.KafkaEnabled() || cfg.S3Enabled() {
		t.Error("optional integrations should be disabled by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HISTORY_LIMIT", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")
	t.Setenv("S3_USE_SSL", "true")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("port = %s", cfg.Port)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("bad HISTORY_LIMIT should fall back to 20, got %d", cfg.HistoryLimit)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("brokers = %q", cfg.KafkaBrokers)
	}
	if !cfg.S3Enabled() || !cfg.S3UseSSL {
		t.Error("expected S3 to be enabled over TLS")
	}
}
