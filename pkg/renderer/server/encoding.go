package server

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// Encode compresses the diagram source and encodes it with the PlantUML
// URL alphabet as expected by /{format}/{encoded} server routes.
func Encode(code string) (string, error) {
	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, flate.BestCompression)

	if err != nil {
		return "", err
	}

	if _, err := w.Write([]byte(code)); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return encode64(buf.Bytes()), nil
}

func Decode(val string) (string, error) {
	data, err := decode64(val)

	if err != nil {
		return "", err
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	result, err := io.ReadAll(r)

	if err != nil {
		return "", err
	}

	return string(result), nil
}

func encode64(data []byte) string {
	var sb strings.Builder

	for i := 0; i < len(data); i += 3 {
		var b1, b2, b3 byte

		b1 = data[i]

		if i+1 < len(data) {
			b2 = data[i+1]
		}

		if i+2 < len(data) {
			b3 = data[i+2]
		}

		sb.WriteByte(alphabet[b1>>2])
		sb.WriteByte(alphabet[((b1&0x3)<<4)|(b2>>4)])
		sb.WriteByte(alphabet[((b2&0xF)<<2)|(b3>>6)])
		sb.WriteByte(alphabet[b3&0x3F])
	}

	return sb.String()
}

func decode64(val string) ([]byte, error) {
	if len(val)%4 != 0 {
		return nil, errors.New("invalid encoded length")
	}

	result := make([]byte, 0, len(val)/4*3)

	for i := 0; i < len(val); i += 4 {
		var c [4]byte

		for j := 0; j < 4; j++ {
			idx := strings.IndexByte(alphabet, val[i+j])

			if idx < 0 {
				return nil, errors.New("invalid encoded character")
			}

			c[j] = byte(idx)
		}

		result = append(result,
			c[0]<<2|c[1]>>4,
			(c[1]&0xF)<<4|c[2]>>2,
			(c[2]&0x3)<<6|c[3],
		)
	}

	return result, nil
}
