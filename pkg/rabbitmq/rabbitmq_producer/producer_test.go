package rabbitmq_producer

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{ err error }

func (f failingProvider) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	return nil, nil, f.err
}

func TestPublisherConfigValidate(t *testing.T) {
	assert.NoError(t, PublisherConfig{}.Validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "leads_events", ExchangeType: "topic", DeclareExchangeIfMissing: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeType: "topic", DeclareExchangeIfMissing: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeName: "leads_events", DeclareExchangeIfMissing: true}.Validate())
}

func TestNewPublisher_ProviderFailure(t *testing.T) {
	_, err := NewPublisher(PublisherConfig{}, nil)
	require.Error(t, err)

	boom := errors.New("dial refused")
	_, err = NewPublisher(PublisherConfig{}, failingProvider{err: boom})
	assert.ErrorIs(t, err, boom)
}
