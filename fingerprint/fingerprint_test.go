package fingerprint

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestCRC16(t *testing.T) {
	// CRC-16/CCITT-FALSE check value.
	assert.Equal(t, CRC16([]byte("123456789")), uint16(0x29B1))
	assert.Equal(t, CRC16(nil), uint16(0xFFFF))
}

func TestXXH64(t *testing.T) {
	assert.Equal(t, XXH64(nil), uint64(0xEF46DB3751D8E999))
	assert.That(t, XXH64([]byte("a")) != XXH64([]byte("b")))
}

func TestHighway(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}

	a, err := Highway([]byte("payload"), key)
	assert.NoError(t, err)
	b, err := Highway([]byte("payload"), key)
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Highway([]byte("payloae"), key)
	assert.NoError(t, err)
	assert.That(t, a != c)

	_, err = Highway([]byte("payload"), key[:16])
	assert.Error(t, err)
}
