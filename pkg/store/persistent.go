package store

import (
	"fmt"
	"sync"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
)

const DefaultPrefix = "pulsar/"

type Persistent[T any] struct {
	backend    backend.Backend
	storageKey string
	codec      Codec[T]

	mu     sync.Mutex
	subs   map[int]func(T, bool)
	order  []int
	nextID int
}

type Option[T any] func(*options[T])

type options[T any] struct {
	prefix  string
	codec   Codec[T]
	initial *T
}

func WithPrefix[T any](prefix string) Option[T] {
	return func(o *options[T]) {
		o.prefix = prefix
	}
}

func WithCodec[T any](codec Codec[T]) Option[T] {
	return func(o *options[T]) {
		o.codec = codec
	}
}

func WithInitial[T any](value T) Option[T] {
	return func(o *options[T]) {
		o.initial = &value
	}
}

func New[T any](b backend.Backend, key string, opts ...Option[T]) (*Persistent[T], error) {
	if b == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}

	o := options[T]{
		prefix: DefaultPrefix,
		codec:  JSON[T](),
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Persistent[T]{
		backend:    b,
		storageKey: o.prefix + key,
		codec:      o.codec,
		subs:       make(map[int]func(T, bool)),
	}

	if o.initial != nil {
		_, ok, err := b.Get(p.storageKey)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p.storageKey, err)
		}
		if !ok {
			raw, err := p.codec.Encode(*o.initial)
			if err != nil {
				return nil, fmt.Errorf("encode initial value: %w", err)
			}
			if err := b.Set(p.storageKey, raw); err != nil {
				return nil, fmt.Errorf("write %s: %w", p.storageKey, err)
			}
		}
	}

	return p, nil
}

func (p *Persistent[T]) Get() (T, bool, error) {
	var zero T

	raw, ok, err := p.backend.Get(p.storageKey)
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", p.storageKey, err)
	}
	if !ok {
		return zero, false, nil
	}

	value, err := p.codec.Decode(raw)
	if err != nil {
		return zero, false, fmt.Errorf("decode %s: %w", p.storageKey, err)
	}

	return value, true, nil
}

func (p *Persistent[T]) Set(value T) error {
	raw, err := p.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if err := p.backend.Set(p.storageKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", p.storageKey, err)
	}

	for _, callback := range p.snapshot() {
		callback(value, true)
	}

	return nil
}

func (p *Persistent[T]) Delete() error {
	if err := p.backend.Remove(p.storageKey); err != nil {
		return fmt.Errorf("remove %s: %w", p.storageKey, err)
	}
	return nil
}

func (p *Persistent[T]) Subscribe(callback func(T, bool)) (Unsubscriber, error) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = callback
	p.order = append(p.order, id)
	p.mu.Unlock()

	value, ok, err := p.Get()
	if err != nil {
		p.removeSubscriber(id)
		return nil, err
	}

	callback(value, ok)

	return func() {
		p.removeSubscriber(id)
	}, nil
}

func (p *Persistent[T]) removeSubscriber(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.subs[id]; !ok {
		return
	}
	delete(p.subs, id)
	for i, subID := range p.order {
		if subID == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *Persistent[T]) snapshot() []func(T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	callbacks := make([]func(T, bool), 0, len(p.order))
	for _, id := range p.order {
		callbacks = append(callbacks, p.subs[id])
	}
	return callbacks
}
