package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedKey is returned when a key was not produced by KeySerializer.
var ErrMalformedKey = errors.New("serialization: malformed key")

// TypeSerializer defines how to serialize/deserialize specific types
type TypeSerializer[T any] interface {
	SerializeValue(value T) ([]byte, error)
	DeserializeValue(data []byte) (T, error)
}

// KeySerializer builds ordered keys of the form namespace, 0x00, big-endian unix nanos.
type KeySerializer struct{}

func (ks *KeySerializer) SerializeKey(namespace string, ts time.Time) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(namespace)+9))
	buf.WriteString(namespace)
	buf.WriteByte(0) // namespace separator
	_ = binary.Write(buf, binary.BigEndian, ts.UnixNano())
	return buf.Bytes()
}

func (ks *KeySerializer) DeserializeKey(key []byte) (string, time.Time, error) {
	parts := bytes.SplitN(key, []byte{0}, 2)
	if len(parts) != 2 || len(parts[1]) != 8 {
		return "", time.Time{}, fmt.Errorf("%w: %x", ErrMalformedKey, key)
	}

	nanos := int64(binary.BigEndian.Uint64(parts[1]))
	return string(parts[0]), time.Unix(0, nanos).UTC(), nil
}

// GobSerializer implements TypeSerializer using Gob encoding
type GobSerializer[T any] struct{}

func NewGobSerializer[T any]() *GobSerializer[T] {
	return &GobSerializer[T]{}
}

func (s *GobSerializer[T]) SerializeValue(value T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, fmt.Errorf("gob serialization failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *GobSerializer[T]) DeserializeValue(data []byte) (T, error) {
	var value T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&value); err != nil {
		return value, fmt.Errorf("gob deserialization failed: %w", err)
	}
	return value, nil
}
