// Package stores contains the key/value stores that the store laws are checked against. Every
// store implements the same small Store interface, so a single law set can be run unchanged against
// an in-memory map, Redis, Consul, DynamoDB, or a remote store service reached over HTTP.
package stores

import (
	"context"
	"fmt"

	o "github.com/launchdarkly/laws-harness/framework/opt"
)

// Store is a string-keyed, string-valued store. A missing key is not an error: Get returns
// o.None in that case.
type Store interface {
	// Name is a short identifier used in test IDs, such as "redis".
	Name() string
	// DSN describes where the store lives, for log output.
	DSN() string
	Get(ctx context.Context, key string) (o.Maybe[string], error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// OpError is returned by the store implementations when the underlying client fails.
type OpError struct {
	Store string
	Op    string
	Key   string
	Err   error
}

func (e OpError) Error() string {
	return fmt.Sprintf("%s %s %q: %s", e.Store, e.Op, e.Key, e.Err)
}

func (e OpError) Unwrap() error { return e.Err }

func opError(s Store, op, key string, err error) error {
	if err == nil {
		return nil
	}
	return OpError{Store: s.Name(), Op: op, Key: key, Err: err}
}

func addPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

type prefixedStore struct {
	base   Store
	prefix string
}

// WithPrefix returns a Store that stores every key under the given prefix in the base store. This
// is how a single shared database is divided between runs: each run gets its own prefix, so keys
// written by one run are never seen by another.
func WithPrefix(base Store, prefix string) Store {
	return prefixedStore{base: base, prefix: prefix}
}

func (p prefixedStore) Name() string { return p.base.Name() }

func (p prefixedStore) DSN() string { return p.base.DSN() + " (prefix " + p.prefix + ")" }

func (p prefixedStore) Get(ctx context.Context, key string) (o.Maybe[string], error) {
	return p.base.Get(ctx, addPrefix(p.prefix, key))
}

func (p prefixedStore) Put(ctx context.Context, key, value string) error {
	return p.base.Put(ctx, addPrefix(p.prefix, key), value)
}

func (p prefixedStore) Delete(ctx context.Context, key string) error {
	return p.base.Delete(ctx, addPrefix(p.prefix, key))
}

func (p prefixedStore) Close() error { return p.base.Close() }
