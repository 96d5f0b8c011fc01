package multidict

import (
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Header struct{ Name, Value string }

func (h Header) String() string {
	return h.Name + ": " + h.Value
}

func (h Header) Is(name string) bool {
	return strings.EqualFold(h.Name, name)
}

// Headers is an ordered list of header pairs. Names are matched
// case-insensitively and keep their original spelling.
type Headers []Header

// Get returns the value of the first header named name.
func (hs Headers) Get(name string) (value string, ok bool) {
	for i := range hs {
		if hs[i].Is(name) {
			return hs[i].Value, true
		}
	}
	return "", false
}

func (hs Headers) GetDefault(name, def string) string {
	if v, ok := hs.Get(name); ok {
		return v
	}
	return def
}

func (hs Headers) Copy() Headers {
	return append(Headers(nil), hs...)
}

func (hs Headers) Combine(other Headers) Headers {
	return append(hs.Copy(), other...)
}

// Filter returns the headers named name, in list order.
func (hs Headers) Filter(name string) (filtered Headers) {
	for _, h := range hs {
		if h.Is(name) {
			filtered = append(filtered, h)
		}
	}
	return
}

// Format renders hs as a header block: one "Name: value" line per header,
// joined by "\n", without a trailing newline.
func (hs Headers) Format() string {
	lines := make([]string, 0, len(hs))
	for _, h := range hs {
		lines = append(lines, h.String())
	}
	return strings.Join(lines, "\n")
}

// HeaderList is a mutable Headers with a set of defaults captured at
// construction, restorable with Reset.
type HeaderList struct {
	data     Headers
	defaults Headers
}

func NewHeaderList(defaults ...Header) *HeaderList {
	l := &HeaderList{defaults: Headers(defaults).Copy()}
	l.Reset()
	return l
}

// NewHeaderListFrom builds a HeaderList from defaults of any supported
// shape: nil, Headers, []Header, map[string]string, map[string][]string or
// http.Header. Map defaults are ordered by name. Any other type yields an
// error wrapping ErrTypeMismatch.
func NewHeaderListFrom(defaults interface{}) (*HeaderList, error) {
	switch d := defaults.(type) {
	case nil:
		return NewHeaderList(), nil
	case Headers:
		return NewHeaderList(d...), nil
	case []Header:
		return NewHeaderList(d...), nil
	case map[string]string:
		var hs Headers
		for _, name := range sortedNames(d) {
			hs = append(hs, Header{name, d[name]})
		}
		return NewHeaderList(hs...), nil
	case map[string][]string:
		return NewHeaderList(fromListMap(d)...), nil
	case http.Header:
		return NewHeaderList(fromListMap(d)...), nil
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "invalid defaults: %T", defaults)
	}
}

func (l *HeaderList) Len() int {
	return len(l.data)
}

func (l *HeaderList) Add(name, value string) {
	l.data = append(l.data, Header{name, value})
}

// Remove deletes every header named name and reports how many were
// removed.
func (l *HeaderList) Remove(name string) int {
	return l.RemoveN(name, -1)
}

// RemoveN deletes up to n headers named name, scanning from the front.
// A negative n removes all of them.
func (l *HeaderList) RemoveN(name string, n int) int {
	removed := 0
	data := make(Headers, 0, len(l.data))
	for _, h := range l.data {
		if h.Is(name) && (n < 0 || removed < n) {
			removed++
			continue
		}
		data = append(data, h)
	}
	l.data = data
	return removed
}

// Set replaces every header named name with a single one.
func (l *HeaderList) Set(name, value string) {
	l.Remove(name)
	l.Add(name, value)
}

// Get returns a copy of the headers named name, or of all headers if name
// is empty.
func (l *HeaderList) Get(name string) Headers {
	if name == "" {
		return l.data.Copy()
	}
	return l.data.Filter(name)
}

// Formatted is Get rendered with Headers.Format.
func (l *HeaderList) Formatted(name string) string {
	return l.Get(name).Format()
}

func (l *HeaderList) Lookup(name string) (string, bool) {
	return l.data.Get(name)
}

// GetFirst returns the value of the first header named name, or def.
func (l *HeaderList) GetFirst(name, def string) string {
	return l.data.GetDefault(name, def)
}

func (l *HeaderList) Contains(name string) bool {
	_, ok := l.data.Get(name)
	return ok
}

// Clear removes every header. Defaults are kept.
func (l *HeaderList) Clear() {
	l.data = Headers{}
}

// Reset replaces the headers with a fresh copy of the defaults.
func (l *HeaderList) Reset() {
	l.data = l.defaults.Copy()
}

func (l *HeaderList) String() string {
	return l.data.Format()
}

func fromListMap(m map[string][]string) (hs Headers) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range m[name] {
			hs = append(hs, Header{name, v})
		}
	}
	return
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
