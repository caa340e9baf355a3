package xsql

import (
	"github.com/FirebirdSQL/jaybird-sub009/config"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
)

type (
	Option interface {
		Apply(c *Connector) error
	}
	configOption  []config.Option
	onCloseOption func(*Connector)
	coderOption   struct {
		coder wire.Coder
	}
	closeLimitOption int
)

func (opts configOption) Apply(c *Connector) error {
	for _, opt := range opts {
		if opt != nil {
			opt(c.config)
		}
	}

	return nil
}

func (onClose onCloseOption) Apply(c *Connector) error {
	c.onClose = append(c.onClose, onClose)

	return nil
}

func (opt coderOption) Apply(c *Connector) error {
	if opt.coder != nil {
		c.coder = opt.coder
	}

	return nil
}

func (limit closeLimitOption) Apply(c *Connector) error {
	c.closeLimit = int(limit)

	return nil
}

// WithConfig applies driver options to the connector configuration.
func WithConfig(opts ...config.Option) Option {
	return configOption(opts)
}

func WithOnClose(onClose func(*Connector)) Option {
	return onCloseOption(onClose)
}

// WithCoder replaces the column codec.
func WithCoder(coder wire.Coder) Option {
	return coderOption{coder: coder}
}

// WithCloseLimit bounds the number of connections closed concurrently by
// Connector.Close. Zero or negative means no limit.
func WithCloseLimit(limit int) Option {
	return closeLimitOption(limit)
}
