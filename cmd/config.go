package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"farmtrade/internal/core/domain/services"
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaBrokers            string
	KafkaNotificationsTopic string
	ListingCatalogURL       string
	TransportAverageSpeed   string
	PaymentRedriveSchedule  string
	OtelExporterEndpoint    string
	LogLevel                string
}

// DSN returns the libpq connection string for the configured database.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// KafkaBrokerList splits the comma separated broker list. Empty means Kafka is off.
func (c Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// AverageSpeedKmh parses TRANSPORT_AVERAGE_SPEED_KMH, defaulting when unset.
func (c Config) AverageSpeedKmh() (float64, error) {
	if c.TransportAverageSpeed == "" {
		return services.DefaultAverageSpeedKmh, nil
	}
	speed, err := strconv.ParseFloat(c.TransportAverageSpeed, 64)
	if err != nil {
		return 0, fmt.Errorf("TRANSPORT_AVERAGE_SPEED_KMH: %w", err)
	}
	return speed, nil
}
