// Package codec provides the pluggable event serializers used by the
// publishing side (trade broadcaster, quote feed).
package codec

import (
	"encoding/json"
	"errors"

	"google.golang.org/protobuf/proto"
)

// Serializer encodes outbound events.
type Serializer interface {
	Marshal(v any) ([]byte, error)
}

// JSON encodes events with encoding/json. It is the default wire format
// for the Kafka topics.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

var ErrNotProto = errors.New("codec: value does not implement proto.Message")

// Proto encodes events that implement proto.Message, for consumers that
// want a schema'd feed.
type Proto struct{}

func (Proto) Marshal(v any) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, ErrNotProto
	}
	return proto.Marshal(msg)
}
