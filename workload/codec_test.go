package workload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input   string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingJSON, false},
		{"json", EncodingJSON, false},
		{"cbor", EncodingCBOR, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseEncoding(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownEncoding) {
				t.Errorf("ParseEncoding(%q) err = %v, want ErrUnknownEncoding", tt.input, err)
			}

			continue
		}

		if err != nil {
			t.Errorf("ParseEncoding(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseEncoding(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEncodingExt(t *testing.T) {
	assert.Equal(t, ".json", EncodingJSON.Ext())
	assert.Equal(t, ".cbor", EncodingCBOR.Ext())
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, enc := range Encodings() {
		t.Run(string(enc), func(t *testing.T) {
			p := NewGenerator(Config{Items: 4, ValuesPerItem: 3, Now: fixedClock}).Generate()

			data, err := Marshal(enc, p)
			require.NoError(t, err)

			got, err := Unmarshal(enc, data)
			require.NoError(t, err)

			assert.Equal(t, p.Version, got.Version)
			assert.Equal(t, p.Timestamp, got.Timestamp)
			require.Len(t, got.Items, 4)

			for i := range p.Items {
				assert.Equal(t, p.Items[i].ID, got.Items[i].ID)
				assert.Equal(t, p.Items[i].Name, got.Items[i].Name)
				assert.Equal(t, p.Items[i].Values, got.Items[i].Values)
				assert.Equal(t, p.Items[i].Flags, got.Items[i].Flags)
				assert.Equal(t, p.Items[i].Meta["category"], got.Items[i].Meta["category"])
			}

			again, err := Marshal(enc, got)
			require.NoError(t, err)
			assert.Equal(t, data, again)
		})
	}
}

func TestMarshalUnknownEncoding(t *testing.T) {
	_, err := Marshal("xml", Payload{})
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, err = Unmarshal("xml", nil)
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestCountItems(t *testing.T) {
	for _, enc := range Encodings() {
		t.Run(string(enc), func(t *testing.T) {
			for _, n := range []int{0, 1, 17} {
				data, err := Marshal(enc, NewGenerator(Config{
					Items:         n,
					ValuesPerItem: 2,
					Now:           fixedClock,
				}).Generate())
				require.NoError(t, err)

				got, err := CountItems(enc, data)
				require.NoError(t, err)
				assert.Equal(t, n, got)
			}
		})
	}
}

func TestCountItemsInvalid(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		data string
	}{
		{"truncated json", EncodingJSON, `{"version":"1.0","items":[`},
		{"items not array", EncodingJSON, `{"version":"1.0","items":5}`},
		{"missing items", EncodingJSON, `{"version":"1.0"}`},
		{"garbage cbor", EncodingCBOR, "\xff\xff\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CountItems(tt.enc, []byte(tt.data))
			assert.Error(t, err)
		})
	}
}
