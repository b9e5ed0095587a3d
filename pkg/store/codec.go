package store

import (
	"encoding/json"
	"fmt"
)

type Codec[T any] interface {
	Encode(value T) (string, error)
	Decode(raw string) (T, error)
}

func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

type jsonCodec[T any] struct{}

func (jsonCodec[T]) Encode(value T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return string(data), nil
}

func (jsonCodec[T]) Decode(raw string) (T, error) {
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		var zero T
		return zero, fmt.Errorf("decode value: %w", err)
	}
	return value, nil
}
