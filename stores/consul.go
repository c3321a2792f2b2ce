package stores

import (
	"context"

	consul "github.com/hashicorp/consul/api"

	o "github.com/launchdarkly/laws-harness/framework/opt"
)

type ConsulStore struct {
	consul  *consul.Client
	address string
}

// NewConsulStore creates a client for the Consul agent at the given address, or at the client
// library's default address (normally localhost:8500) if address is empty.
func NewConsulStore(address string) (*ConsulStore, error) {
	config := consul.DefaultConfig()
	if address != "" {
		config.Address = address
	}
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &ConsulStore{consul: client, address: config.Address}, nil
}

func (c *ConsulStore) Name() string { return "consul" }

func (c *ConsulStore) DSN() string { return c.address }

func (c *ConsulStore) Get(ctx context.Context, key string) (o.Maybe[string], error) {
	pair, _, err := c.consul.KV().Get(key, (&consul.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return o.None[string](), opError(c, "get", key, err)
	}
	if pair == nil {
		return o.None[string](), nil
	}
	return o.Some(string(pair.Value)), nil
}

func (c *ConsulStore) Put(ctx context.Context, key, value string) error {
	_, err := c.consul.KV().Put(&consul.KVPair{Key: key, Value: []byte(value)},
		(&consul.WriteOptions{}).WithContext(ctx))
	return opError(c, "put", key, err)
}

func (c *ConsulStore) Delete(ctx context.Context, key string) error {
	_, err := c.consul.KV().Delete(key, (&consul.WriteOptions{}).WithContext(ctx))
	return opError(c, "delete", key, err)
}

func (c *ConsulStore) Close() error { return nil }
