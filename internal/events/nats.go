package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"jobboard/internal/common"
)

type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *zap.Logger
}

func NewNATSPublisher(url, prefix string, timeout time.Duration, logger *zap.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("jobboard-api"),
		nats.Timeout(timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "connecting to NATS", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}, nil
}

func (p *NATSPublisher) Subject(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

func (p *NATSPublisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return common.NewError(common.CodeInternal, "marshaling event", err)
	}
	subject := p.Subject(event.Name)
	if err := p.conn.Publish(subject, data); err != nil {
		return common.NewError(common.CodeInternal, "publishing to NATS", err)
	}
	p.logger.Debug("published event", zap.String("subject", subject), zap.Int("size", len(data)))
	return nil
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
