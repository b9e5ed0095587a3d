package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
)

type Producer[T any] func(ctx context.Context) (T, error)

type Async[T any] struct {
	inner    *Persistent[T]
	producer Producer[T]
	timeout  time.Duration
	onError  func(error)
}

type AsyncOption[T any] func(*asyncOptions[T])

type asyncOptions[T any] struct {
	storeOpts []Option[T]
	timeout   time.Duration
	onError   func(error)
}

func WithProduceTimeout[T any](d time.Duration) AsyncOption[T] {
	return func(o *asyncOptions[T]) {
		o.timeout = d
	}
}

func WithErrorHandler[T any](fn func(error)) AsyncOption[T] {
	return func(o *asyncOptions[T]) {
		o.onError = fn
	}
}

func WithStoreOptions[T any](opts ...Option[T]) AsyncOption[T] {
	return func(o *asyncOptions[T]) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

func NewAsync[T any](b backend.Backend, key string, producer Producer[T], opts ...AsyncOption[T]) (*Async[T], error) {
	if producer == nil {
		return nil, fmt.Errorf("producer is required")
	}

	var o asyncOptions[T]
	for _, opt := range opts {
		opt(&o)
	}

	inner, err := New(b, key, o.storeOpts...)
	if err != nil {
		return nil, err
	}

	a := &Async[T]{
		inner:    inner,
		producer: producer,
		timeout:  o.timeout,
		onError:  o.onError,
	}

	_, ok, err := b.Get(inner.storageKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", inner.storageKey, err)
	}
	if !ok {
		a.Invalidate()
	}

	return a, nil
}

func (a *Async[T]) Invalidate() {
	go a.produce()
}

func (a *Async[T]) produce() {
	ctx := context.Background()
	cancel := func() {}
	if a.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
	}
	defer cancel()

	value, err := a.producer(ctx)
	if err != nil {
		if a.onError != nil {
			a.onError(fmt.Errorf("produce %s: %w", a.inner.storageKey, err))
		}
		return
	}

	if err := a.inner.Set(value); err != nil && a.onError != nil {
		a.onError(err)
	}
}

func (a *Async[T]) Get() (T, bool, error) {
	return a.inner.Get()
}

func (a *Async[T]) Subscribe(callback func(T, bool)) (Unsubscriber, error) {
	return a.inner.Subscribe(callback)
}

func (a *Async[T]) Delete() error {
	return a.inner.Delete()
}
