// Package fingerprint computes content fingerprints of flash image ranges.
// CRC-16 matches what most firmware tooling expects for flash images;
// XXH64 is a fast unkeyed fingerprint; Highway is keyed for when the
// fingerprint itself must not be forgeable.
package fingerprint

import (
	"github.com/cespare/xxhash"
	"github.com/minio/highwayhash"
	"github.com/sigurn/crc16"
	"github.com/zeebo/errs"
)

// KeySize is the key length Highway requires.
const KeySize = 32

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// CRC16 returns the CRC-16/CCITT-FALSE of p.
func CRC16(p []byte) uint16 {
	return crc16.Checksum(p, crcTable)
}

// XXH64 returns the 64-bit xxHash of p.
func XXH64(p []byte) uint64 {
	return xxhash.Sum64(p)
}

// Highway returns the keyed 64-bit HighwayHash of p. The key must be
// KeySize bytes.
func Highway(p, key []byte) (uint64, error) {
	h, err := highwayhash.New64(key)
	if err != nil {
		return 0, errs.Wrap(err)
	}
	h.Write(p)
	return h.Sum64(), nil
}
