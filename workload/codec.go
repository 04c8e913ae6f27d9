package workload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/gjson"
)

// Encoding names the on-disk form of a structured payload.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingCBOR Encoding = "cbor"
)

// cborMode sorts map keys so equal payloads always encode to equal bytes.
var cborMode = func() cbor.EncMode {
	em, err := cbor.EncOptions{Sort: cbor.SortCoreDeterministic}.EncMode()
	if err != nil {
		panic(err)
	}

	return em
}()

// ErrUnknownEncoding is returned for an Encoding other than json or cbor.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encodings returns the supported encodings.
func Encodings() []Encoding {
	return []Encoding{EncodingJSON, EncodingCBOR}
}

// ParseEncoding maps a user supplied name to an Encoding.
// The empty string selects JSON.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case "", EncodingJSON:
		return EncodingJSON, nil
	case EncodingCBOR:
		return EncodingCBOR, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownEncoding, s)
	}
}

// Ext returns the file extension used for default benchmark paths.
func (e Encoding) Ext() string {
	if e == EncodingCBOR {
		return ".cbor"
	}

	return ".json"
}

// Marshal serializes p in the given encoding. JSON output is compact.
func Marshal(e Encoding, p Payload) ([]byte, error) {
	switch e {
	case EncodingJSON:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}

		return data, nil

	case EncodingCBOR:
		data, err := cborMode.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode cbor: %w", err)
		}

		return data, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownEncoding, e)
	}
}

// Unmarshal parses data produced by Marshal.
func Unmarshal(e Encoding, data []byte) (Payload, error) {
	var p Payload

	switch e {
	case EncodingJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("decode json: %w", err)
		}

	case EncodingCBOR:
		if err := cbor.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("decode cbor: %w", err)
		}

	default:
		return p, fmt.Errorf("%w %q", ErrUnknownEncoding, e)
	}

	return p, nil
}

// CountItems returns the number of items in a serialized payload.
// JSON is scanned with gjson instead of being decoded in full.
func CountItems(e Encoding, data []byte) (int, error) {
	if e == EncodingJSON {
		if !gjson.ValidBytes(data) {
			return 0, errors.New("decode json: invalid document")
		}

		items := gjson.GetBytes(data, "items")
		if !items.IsArray() {
			return 0, errors.New("decode json: items is not an array")
		}

		return int(gjson.GetBytes(data, "items.#").Int()), nil
	}

	p, err := Unmarshal(e, data)
	if err != nil {
		return 0, err
	}

	return len(p.Items), nil
}
