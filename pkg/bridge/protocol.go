package bridge

import "encoding/json"

type MessageType string

const (
	MsgTypeConnect  MessageType = "connect"
	MsgTypeSnapshot MessageType = "snapshot"
	MsgTypeUpdate   MessageType = "update"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Key     string          `json:"key,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
	Present bool            `json:"present"`
}
