package multidict

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/quic-go/qpack"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/http2/hpack"
)

// Validate checks every header name and value against the HTTP field
// grammar. Names beginning with ':' are taken as pseudo-headers and the
// rest of the name is checked.
func (hs Headers) Validate() error {
	for i, h := range hs {
		name := strings.TrimPrefix(h.Name, ":")
		if !httpguts.ValidHeaderFieldName(name) {
			return errors.Errorf("header %d: invalid name: %#v", i, h.Name)
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return errors.Errorf("header %d: invalid value for %s: %#v", i, h.Name, h.Value)
		}
	}
	return nil
}

// EncodeHPACK returns hs as an HTTP/2 header block fragment. Names are
// lowercased as HTTP/2 requires.
func (hs Headers) EncodeHPACK() []byte {
	hpackBuf := bytes.NewBuffer(nil)
	hpackEnc := hpack.NewEncoder(hpackBuf)
	for i := range hs {
		if err := hpackEnc.WriteField(hpack.HeaderField{
			Name:  strings.ToLower(hs[i].Name),
			Value: hs[i].Value,
		}); err != nil {
			panic(fmt.Errorf("hpack write to buffer: %v", err))
		}
	}
	return hpackBuf.Bytes()
}

// EncodeQPACK returns hs as an HTTP/3 field section, without the HEADERS
// frame around it.
func (hs Headers) EncodeQPACK() []byte {
	qpackBuf := bytes.NewBuffer(nil)
	e := qpack.NewEncoder(qpackBuf)
	for _, h := range hs {
		if err := e.WriteField(qpack.HeaderField{Name: strings.ToLower(h.Name), Value: h.Value}); err != nil {
			panic(fmt.Errorf("qpack write to buffer: %v", err))
		}
	}
	return qpackBuf.Bytes()
}

// Apply adds every header of hs to dst, keeping the list order for
// repeated names.
func (hs Headers) Apply(dst http.Header) {
	for _, h := range hs {
		dst.Add(h.Name, h.Value)
	}
}
