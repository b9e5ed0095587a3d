package bridge

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/cameron-webmatter/pulsar/pkg/store"
)

func Publish[T any](srv *Server, key string, src store.ReadonlyStore[T]) (store.Unsubscriber, error) {
	unsub, err := src.Subscribe(func(value T, ok bool) {
		var raw json.RawMessage
		if ok {
			data, err := json.Marshal(value)
			if err != nil {
				log.Printf("encode update for %s failed: %v", key, err)
				return
			}
			raw = data
		}
		srv.BroadcastUpdate(key, raw, ok)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", key, err)
	}

	return unsub, nil
}
