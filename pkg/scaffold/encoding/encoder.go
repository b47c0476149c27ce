package encoding

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// UTF8 is the canonical name of the passthrough encoding.
const UTF8 = "utf-8"

// Encoder converts rendered UTF-8 placeholders into the bytes written to disk.
type Encoder interface {
	// Encode converts UTF-8 content into the target encoding. Characters that
	// cannot be represented are an error; placeholders are never silently mangled.
	Encode(content []byte) ([]byte, error)
	// Name returns the canonical name of the target encoding.
	Name() string
}

// charsetEncoder implements Encoder on top of golang.org/x/net/html/charset
// lookups and golang.org/x/text transformers.
type charsetEncoder struct {
	name string
	enc  xencoding.Encoding // nil for UTF-8
}

// NewEncoder returns an Encoder for the given WHATWG/IANA encoding label
// ("utf-8", "windows-1250", "iso-8859-2", "utf-16le", ...). An empty label means UTF-8.
func NewEncoder(label string) (Encoder, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == UTF8 || label == "utf8" {
		return &charsetEncoder{name: UTF8}, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", label)
	}
	if name == UTF8 {
		return &charsetEncoder{name: UTF8}, nil
	}
	return &charsetEncoder{name: name, enc: enc}, nil
}

// Name implements Encoder.
func (e *charsetEncoder) Name() string { return e.name }

// Encode implements Encoder.
func (e *charsetEncoder) Encode(content []byte) ([]byte, error) {
	if e.enc == nil {
		return content, nil
	}
	out, _, err := transform.Bytes(e.enc.NewEncoder(), content)
	if err != nil {
		return nil, fmt.Errorf("cannot encode content as %s: %w", e.name, err)
	}
	return out, nil
}
