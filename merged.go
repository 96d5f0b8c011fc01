package multidict

import (
	"bytes"
	"fmt"
)

// MergedView is a read-only overlay of several sources. Point lookups
// return the answer of the first source that has the key. Iteration walks
// every source in turn, so a key held by two sources is seen twice.
//
// The view references its sources and sees later changes made to them.
type MergedView struct {
	sources []Source
}

func NewMergedView(sources ...Source) *MergedView {
	return &MergedView{sources: append([]Source(nil), sources...)}
}

// Get returns the single value of the first source whose lookup succeeds.
// Sources that hold the key with an empty list are skipped. If no source
// has a value, the error wraps ErrNotFound.
func (m *MergedView) Get(key string) (string, error) {
	for _, s := range m.sources {
		if v, ok := s.Lookup(key); ok {
			return v, nil
		}
	}
	return "", notFound(key)
}

func (m *MergedView) GetDefault(key, def string) string {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	return v
}

// GetList returns the whole list of the first source that has key. Lists
// of different sources are never combined.
func (m *MergedView) GetList(key string) ([]string, error) {
	for _, s := range m.sources {
		if s.Has(key) {
			return s.GetList(key), nil
		}
	}
	return nil, notFound(key)
}

func (m *MergedView) Has(key string) bool {
	for _, s := range m.sources {
		if s.Has(key) {
			return true
		}
	}
	return false
}

func (m *MergedView) Items() []Item {
	var items []Item
	for _, s := range m.sources {
		items = append(items, s.Items()...)
	}
	return items
}

func (m *MergedView) Keys() []string {
	var keys []string
	for _, it := range m.Items() {
		keys = append(keys, it.Key)
	}
	return keys
}

func (m *MergedView) Values() []string {
	var values []string
	for _, it := range m.Items() {
		values = append(values, it.Value)
	}
	return values
}

// Copy flattens the iteration order into a Flat. When several sources
// hold a key the last one wins, the opposite of Get.
func (m *MergedView) Copy() Flat {
	f := make(Flat)
	for _, it := range m.Items() {
		f[it.Key] = it.Value
	}
	return f
}

// Collapse returns a MultiDict holding, for each key, the list GetList
// would return. Keys appear in the order they are first seen.
func (m *MergedView) Collapse() *MultiDict {
	d := &MultiDict{}
	for _, k := range m.Keys() {
		if d.Has(k) {
			continue
		}
		list, err := m.GetList(k)
		if err != nil {
			panic(fmt.Errorf("key %#v vanished during collapse", k))
		}
		d.SetList(k, list)
	}
	return d
}

func (m *MergedView) String() string {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("MergedView{")
	for i, it := range m.Copy().Items() {
		if i > 0 {
			buf.WriteString(", ")
		}
		_, _ = fmt.Fprintf(buf, "%q: %q", it.Key, it.Value)
	}
	buf.WriteString("}")
	return buf.String()
}
