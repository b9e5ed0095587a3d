package store

type Store[T any] interface {
	Get() (T, bool, error)
	Set(value T) error
	Delete() error
	Subscribe(callback func(value T, ok bool)) (Unsubscriber, error)
}

type Unsubscriber func()

type ReadonlyStore[T any] interface {
	Get() (T, bool, error)
	Subscribe(callback func(value T, ok bool)) (Unsubscriber, error)
}
