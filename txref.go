package chapa

import (
	"strings"

	"github.com/lithammer/shortuuid/v3"
)

const (
	defaultTxRefPrefix = "TX-"
	defaultTxRefSize   = 15
)

// TxRefOption adjusts how GenerateTxRef builds a reference.
type TxRefOption func(*txRefConfig)

type txRefConfig struct {
	prefix string
	size   int
}

// WithPrefix sets the reference prefix. The default is "TX-".
func WithPrefix(prefix string) TxRefOption {
	return func(cfg *txRefConfig) {
		cfg.prefix = prefix
	}
}

// WithoutPrefix drops the prefix entirely.
func WithoutPrefix() TxRefOption {
	return func(cfg *txRefConfig) {
		cfg.prefix = ""
	}
}

// WithSize sets the length of the random part. The default is 15.
func WithSize(size int) TxRefOption {
	return func(cfg *txRefConfig) {
		if size > 0 {
			cfg.size = size
		}
	}
}

// GenerateTxRef builds a fresh transaction reference such as
// "TX-oTKmcacVzJUWn3B". References identify transactions to the API, so
// a reused one is rejected as a duplicate.
func GenerateTxRef(opts ...TxRefOption) string {
	cfg := &txRefConfig{prefix: defaultTxRefPrefix, size: defaultTxRefSize}
	for _, opt := range opts {
		opt(cfg)
	}

	var sb strings.Builder
	for sb.Len() < cfg.size {
		sb.WriteString(shortuuid.New())
	}
	return cfg.prefix + sb.String()[:cfg.size]
}
