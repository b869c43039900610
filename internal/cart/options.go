package cart

import (
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

// DefaultKey is the key the whole cart blob is stored under.
const DefaultKey = "@GoMarketplace:products"

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCurrency sets the currency Total is reported in. Prices themselves are
// persisted as bare numbers.
func WithCurrency(unit currency.Unit) Option {
	return func(s *Store) {
		s.currency = unit
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}
