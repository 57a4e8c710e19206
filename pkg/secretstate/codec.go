package secretstate

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Serialize frames pd as a little-endian u32 byte length followed by its
// canonical CBOR encoding. The length prefix lets a future format revision
// grow the envelope without re-parsing every stored blob to tell old from
// new.
func Serialize(encMode cbor.EncMode, pd *PublicData) ([]byte, error) {
	body, err := encMode.Marshal(pd)
	if err != nil {
		return nil, fmt.Errorf("secretstate: cannot encode PublicData: %w", err)
	}

	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out[:4], uint32(len(body)))
	copy(out[4:], body)
	return out, nil
}

// Deserialize reverses Serialize. When the first four bytes do not agree
// with a trailing CBOR body of that exact length, it falls back to
// treating the entire input as bare CBOR, so a blob written before the
// length-prefixed envelope existed still loads.
func Deserialize(blob []byte) (*PublicData, error) {
	if len(blob) >= 4 {
		declared := binary.LittleEndian.Uint32(blob[:4])
		if uint64(declared) == uint64(len(blob)-4) {
			var pd PublicData
			if err := cbor.Unmarshal(blob[4:], &pd); err == nil {
				return &pd, nil
			}
		}
	}

	var pd PublicData
	if err := cbor.Unmarshal(blob, &pd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &pd, nil
}
