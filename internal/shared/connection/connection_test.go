package connection_test

import (
	"testing"
	"time"

	"go-hrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := connection.PostgresConfig{
		Host: "db", User: "hrms", Password: "secret", Name: "hrms", Port: "5432", SSLMode: "disable",
	}

	assert.Equal(t, "host=db user=hrms password=secret dbname=hrms port=5432 sslmode=disable", cfg.DSN())
}

func TestNewKafkaWriter(t *testing.T) {
	w := connection.NewKafkaWriter("broker:9092")
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "broker:9092", w.Addr.String())
	assert.Equal(t, kafkago.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.Positive(t, w.BatchTimeout)
	assert.Equal(t, 2*time.Second, w.WriteTimeout)
}
