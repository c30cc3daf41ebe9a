package parse

import (
	"io"

	"golang.org/x/net/html/charset"
)

type parseOpts struct {
	comments       bool
	permissive     bool
	trimWhitespace bool
	charsetReader  func(label string, input io.Reader) (io.Reader, error)
}

func defaultOpts() *parseOpts {
	return &parseOpts{
		comments:      true,
		charsetReader: charset.NewReaderLabel,
	}
}

type ParseOption func(*parseOpts)

// ParseComments controls whether comments are kept. The default is true.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// ParsePermissive accepts sloppy input: unmatched end tags, unquoted
// attribute values and unknown entities.
func ParsePermissive(v bool) ParseOption {
	return func(o *parseOpts) { o.permissive = v }
}

// ParseTrimWhitespace drops text runs that consist only of whitespace.
func ParseTrimWhitespace(v bool) ParseOption {
	return func(o *parseOpts) { o.trimWhitespace = v }
}

// ParseCharsetReader sets the decoder used for non UTF-8 encodings named in
// an XML declaration. The default understands the WHATWG encoding labels.
func ParseCharsetReader(f func(label string, input io.Reader) (io.Reader, error)) ParseOption {
	return func(o *parseOpts) { o.charsetReader = f }
}
