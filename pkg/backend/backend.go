package backend

import "errors"

var ErrClosed = errors.New("backend closed")

type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
