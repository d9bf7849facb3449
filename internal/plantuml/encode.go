package plantuml

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/klauspost/compress/flate"
)

// PlantUML's base64 variant.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// Encode compresses source with raw deflate and encodes it for use in PlantUML server URLs.
func Encode(source string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("create deflate writer: %w", err)
	}
	if _, err := w.Write([]byte(source)); err != nil {
		return "", fmt.Errorf("deflate source: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("deflate source: %w", err)
	}
	return encode64(buf.Bytes()), nil
}

func encode64(data []byte) string {
	var sb strings.Builder
	sb.Grow((len(data) + 2) / 3 * 4)
	for i := 0; i < len(data); i += 3 {
		var b1, b2 byte
		b0 := data[i]
		if i+1 < len(data) {
			b1 = data[i+1]
		}
		if i+2 < len(data) {
			b2 = data[i+2]
		}
		sb.WriteByte(alphabet[b0>>2])
		sb.WriteByte(alphabet[(b0&0x3)<<4|b1>>4])
		sb.WriteByte(alphabet[(b1&0xF)<<2|b2>>6])
		sb.WriteByte(alphabet[b2&0x3F])
	}
	return sb.String()
}

// Decode reverses Encode.
func Decode(encoded string) (string, error) {
	raw, err := decode64(encoded)
	if err != nil {
		return "", err
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return "", fmt.Errorf("inflate source: %w", err)
	}
	return out.String(), nil
}

func decode64(s string) ([]byte, error) {
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("encoded length %d is not a multiple of 4", len(s))
	}
	out := make([]byte, 0, len(s)/4*3)
	for i := 0; i < len(s); i += 4 {
		var v [4]byte
		for j := 0; j < 4; j++ {
			idx := strings.IndexByte(alphabet, s[i+j])
			if idx < 0 {
				return nil, fmt.Errorf("invalid character %q at %d", s[i+j], i+j)
			}
			v[j] = byte(idx)
		}
		out = append(out, v[0]<<2|v[1]>>4, v[1]<<4|v[2]>>2, v[2]<<6|v[3])
	}
	return out, nil
}
