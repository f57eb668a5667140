package ingest

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeReader returns a UTF-8 reader over the uploaded payload. Exports
// from Brazilian spreadsheet tools arrive either as UTF-8 (often with a
// BOM) or as ISO-8859-1; anything that is not valid UTF-8 is decoded as
// the latter.
func decodeReader(data []byte) io.Reader {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return bytes.NewReader(data)
	}
	return transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder())
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
