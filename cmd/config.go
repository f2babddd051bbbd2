package cmd

import (
	"fmt"
	"net/url"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	DirectoryDriverPostgres = "postgres"
	DirectoryDriverRedis    = "redis"

	NotifyGatewayLog   = "log"
	NotifyGatewayKafka = "kafka"
	NotifyGatewayAMQP  = "amqp"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StoreDriver     string
	DirectoryDriver string
	RedisAddr       string

	NotifyGateway       string
	KafkaBrokers        []string
	KafkaNotifyTopic    string
	AMQPURL             string
	AMQPNotifyExchange  string
	DispatchConcurrency int

	JWTSecret string

	ReminderSchedule string
	ReminderMinAge   time.Duration

	NotifyCustomerOnAccept   bool
	NotifyManagerOnCancel    bool
	NotifyManagerOnDelivered bool

	LogLevel  string
	LogFormat string
}

// DSN is the gorm/pgx connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// DatabaseURL is the URL form of DSN, used by the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
