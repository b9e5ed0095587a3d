package store

import "sync"

type Derived[T any] struct {
	mu     sync.Mutex
	value  T
	ok     bool
	subs   map[int]func(T, bool)
	order  []int
	nextID int
	unsub  Unsubscriber
}

func NewDerived[S any, T any](source ReadonlyStore[S], transform func(S) T) (*Derived[T], error) {
	d := &Derived[T]{
		subs: make(map[int]func(T, bool)),
	}

	unsub, err := source.Subscribe(func(val S, ok bool) {
		var next T
		if ok {
			next = transform(val)
		}

		d.mu.Lock()
		d.value = next
		d.ok = ok
		callbacks := make([]func(T, bool), 0, len(d.order))
		for _, id := range d.order {
			callbacks = append(callbacks, d.subs[id])
		}
		d.mu.Unlock()

		for _, callback := range callbacks {
			callback(next, ok)
		}
	})
	if err != nil {
		return nil, err
	}

	d.unsub = unsub
	return d, nil
}

func (d *Derived[T]) Get() (T, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.ok, nil
}

func (d *Derived[T]) Subscribe(callback func(T, bool)) (Unsubscriber, error) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subs[id] = callback
	d.order = append(d.order, id)
	value, ok := d.value, d.ok
	d.mu.Unlock()

	callback(value, ok)

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if _, registered := d.subs[id]; !registered {
			return
		}
		delete(d.subs, id)
		for i, subID := range d.order {
			if subID == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}, nil
}

func (d *Derived[T]) Destroy() {
	if d.unsub != nil {
		d.unsub()
	}
}
