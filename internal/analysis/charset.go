package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// decode converts raw source bytes to UTF-8 text according to charset.
// An empty charset means the bytes are already UTF-8.
func decode(raw []byte, charset string) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return string(raw), nil
	case "iso-8859-1", "latin-1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "windows-1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported charset %q", charset)
	}
}
