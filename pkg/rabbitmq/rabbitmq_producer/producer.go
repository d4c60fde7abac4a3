package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"github.com/keertiraj-bot/realstate/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig describes the exchange a Publisher writes to.
type PublisherConfig struct {
	ExchangeName       string
	ExchangeType       string // direct, fanout, topic or headers
	DurableExchange    bool
	AutoDeleteExchange bool
	InternalExchange   bool
	ExchangeArgs       amqp.Table

	// When false the exchange must already exist.
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) Validate() error {
	if c.DeclareExchangeIfMissing && c.ExchangeName == "" {
		return fmt.Errorf("producer: exchange name is required when DeclareExchangeIfMissing is set")
	}
	if c.DeclareExchangeIfMissing && c.ExchangeType == "" {
		return fmt.Errorf("producer: exchange type is required when DeclareExchangeIfMissing is set")
	}
	return nil
}

// ChannelProvider hands out channels on a live connection.
type ChannelProvider interface {
	GetChannel() (*amqp.Connection, *amqp.Channel, error)
}

// Publisher publishes to one exchange. A channel lost with its connection is
// reopened on the next Publish.
type Publisher struct {
	config    PublisherConfig
	provider  ChannelProvider
	mu        sync.Mutex
	channel   *amqp.Channel
	connected *amqp.Connection

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, provider ChannelProvider) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("producer: channel provider cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{config: cfg, provider: provider, Logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.openChannelLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) openChannelLocked() error {
	conn, ch, err := p.provider.GetChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			p.config.InternalExchange,
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.connected = conn
	p.channel = ch
	return nil
}

// Publish sends msg with routingKey. It reopens the channel once if it was closed.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() || p.connected == nil || p.connected.IsClosed() {
		p.Logger.Warn("Producer: channel is closed, reopening", "exchange", p.config.ExchangeName)
		if err := p.openChannelLocked(); err != nil {
			return err
		}
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close closes the channel. The shared connection stays with its manager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Producer: error closing channel")
		return err
	}
	p.Logger.Debug("Producer closed.")
	return nil
}
