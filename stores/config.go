package stores

import (
	"context"
	"io"
	"time"

	"go.uber.org/multierr"
)

// Config selects which stores the store laws run against. Each non-empty field enables one store.
type Config struct {
	Memory     bool           `json:"memory" yaml:"memory"`
	Redis      string         `json:"redis,omitempty" yaml:"redis,omitempty"`
	Consul     string         `json:"consul,omitempty" yaml:"consul,omitempty"`
	DynamoDB   DynamoDBConfig `json:"dynamodb,omitempty" yaml:"dynamodb,omitempty"`
	ServiceURL string         `json:"serviceUrl,omitempty" yaml:"serviceUrl,omitempty"`
}

type DynamoDBConfig struct {
	Table    string `json:"table,omitempty" yaml:"table,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// Names returns the name of every store enabled in the config, in the order Open creates them.
func (c Config) Names() []string {
	var names []string
	if c.Memory {
		names = append(names, "memory")
	}
	if c.Redis != "" {
		names = append(names, "redis")
	}
	if c.Consul != "" {
		names = append(names, "consul")
	}
	if c.DynamoDB.Table != "" {
		names = append(names, "dynamodb")
	}
	if c.ServiceURL != "" {
		names = append(names, "service")
	}
	return names
}

const serviceConnectTimeout = 10 * time.Second

// Open creates a client for every store enabled in the config. Every store is wrapped with
// WithPrefix(prefix) if prefix is non-empty. If any store fails to open, the ones already opened
// are closed and the error is returned.
func Open(ctx context.Context, config Config, prefix string, output io.Writer) (ret []Store, err error) {
	defer func() {
		if err != nil {
			err = multierr.Append(err, CloseAll(ret))
			ret = nil
		}
	}()
	add := func(s Store) {
		if prefix != "" {
			s = WithPrefix(s, prefix)
		}
		ret = append(ret, s)
	}
	if config.Memory {
		add(NewMemoryStore())
	}
	if config.Redis != "" {
		add(NewRedisStore(config.Redis))
	}
	if config.Consul != "" {
		s, err := NewConsulStore(config.Consul)
		if err != nil {
			return ret, err
		}
		add(s)
	}
	if config.DynamoDB.Table != "" {
		s, err := NewDynamoDBStore(config.DynamoDB.Table, config.DynamoDB.Endpoint)
		if err != nil {
			return ret, err
		}
		if err := s.EnsureTable(ctx); err != nil {
			return ret, err
		}
		add(s)
	}
	if config.ServiceURL != "" {
		s, err := ConnectHTTPStore(config.ServiceURL, serviceConnectTimeout, output)
		if err != nil {
			return ret, err
		}
		add(s)
	}
	return ret, nil
}

// CloseAll closes every store and combines any errors.
func CloseAll(stores []Store) error {
	var err error
	for _, s := range stores {
		err = multierr.Append(err, s.Close())
	}
	return err
}
