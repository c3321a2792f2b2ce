package stores

import (
	"context"

	"github.com/launchdarkly/laws-harness/framework"
	o "github.com/launchdarkly/laws-harness/framework/opt"
)

type loggingStore struct {
	base   Store
	logger framework.Logger
}

// WithLogger returns a Store that writes a line to the logger for every operation.
func WithLogger(base Store, logger framework.Logger) Store {
	return loggingStore{base: base, logger: framework.LoggerWithPrefix(logger, "["+base.Name()+"] ")}
}

func (l loggingStore) Name() string { return l.base.Name() }

func (l loggingStore) DSN() string { return l.base.DSN() }

func (l loggingStore) Get(ctx context.Context, key string) (o.Maybe[string], error) {
	value, err := l.base.Get(ctx, key)
	if err != nil {
		l.logger.Printf("get %q failed: %s", key, err)
	} else {
		l.logger.Printf("get %q -> %s", key, value)
	}
	return value, err
}

func (l loggingStore) Put(ctx context.Context, key, value string) error {
	err := l.base.Put(ctx, key, value)
	if err != nil {
		l.logger.Printf("put %q failed: %s", key, err)
	} else {
		l.logger.Printf("put %q = %q", key, value)
	}
	return err
}

func (l loggingStore) Delete(ctx context.Context, key string) error {
	err := l.base.Delete(ctx, key)
	if err != nil {
		l.logger.Printf("delete %q failed: %s", key, err)
	} else {
		l.logger.Printf("delete %q", key)
	}
	return err
}

func (l loggingStore) Close() error { return l.base.Close() }
