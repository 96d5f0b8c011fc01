// Package multidict provides ordered multi-valued containers for HTTP
// request and response data: form fields and query parameters that may
// repeat, read-only overlays of several such maps, and case-insensitive
// header lists.
//
// None of the containers are safe for concurrent mutation. Use Copy to hand
// a container to another goroutine.
package multidict

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
)

type Item struct{ Key, Value string }

type ListItem struct {
	Key    string
	Values []string
}

// MultiDict maps keys to ordered lists of values. Single-value reads
// return the last value of a key's list. Keys are iterated in the order
// they were first inserted. The zero value is an empty MultiDict, and a
// nil *MultiDict reads as one; writing to a nil *MultiDict panics.
type MultiDict struct {
	keys  []string
	lists map[string][]string
}

// New returns a MultiDict holding items, appended in order.
func New(items ...Item) *MultiDict {
	d := &MultiDict{}
	for _, it := range items {
		d.Append(it.Key, it.Value)
	}
	return d
}

// FromValues copies v into a new MultiDict. Keys are inserted in sorted
// order since v has none of its own.
func FromValues(v url.Values) *MultiDict {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := &MultiDict{}
	for _, k := range keys {
		d.SetList(k, v[k])
	}
	return d
}

func (d *MultiDict) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d.lists[key]
	return ok
}

func (d *MultiDict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Lookup returns the last value stored for key. ok is false both when the
// key is absent and when its list is empty.
func (d *MultiDict) Lookup(key string) (value string, ok bool) {
	if d == nil {
		return "", false
	}
	list := d.lists[key]
	if len(list) == 0 {
		return "", false
	}
	return list[len(list)-1], true
}

// Get returns the last value stored for key, or "" if there is none.
func (d *MultiDict) Get(key string) string {
	v, _ := d.Lookup(key)
	return v
}

func (d *MultiDict) GetDefault(key, def string) string {
	if v, ok := d.Lookup(key); ok {
		return v
	}
	return def
}

// GetList returns a copy of every value stored for key, in insertion
// order. It returns an empty slice if the key is absent.
func (d *MultiDict) GetList(key string) []string {
	if d == nil {
		return []string{}
	}
	return append([]string{}, d.lists[key]...)
}

// Set replaces the whole list for key with the single value. Earlier
// values are discarded; use Append to add one.
func (d *MultiDict) Set(key, value string) {
	d.store(key, []string{value})
}

func (d *MultiDict) SetList(key string, values []string) {
	d.store(key, append([]string{}, values...))
}

// SetDefault stores def as the only value of key if key is absent, and
// returns the resulting single-value read.
func (d *MultiDict) SetDefault(key, def string) string {
	if !d.Has(key) {
		d.Set(key, def)
	}
	return d.Get(key)
}

// SetListDefault stores a copy of def for key if key is absent, and
// returns a copy of the resulting list.
func (d *MultiDict) SetListDefault(key string, def []string) []string {
	if !d.Has(key) {
		d.SetList(key, def)
	}
	return d.GetList(key)
}

// Append adds value to the end of key's list, creating the key if needed.
func (d *MultiDict) Append(key, value string) {
	d.SetListDefault(key, nil)
	d.lists[key] = append(d.lists[key], value)
}

func (d *MultiDict) Del(key string) {
	if !d.Has(key) {
		return
	}
	delete(d.lists, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

func (d *MultiDict) Keys() []string {
	if d == nil {
		return []string{}
	}
	return append([]string{}, d.keys...)
}

// Items returns one pair per key holding its last value. Keys with an
// empty list are reported with an empty value.
func (d *MultiDict) Items() []Item {
	if d == nil {
		return []Item{}
	}
	items := make([]Item, 0, len(d.keys))
	for _, k := range d.keys {
		items = append(items, Item{k, d.Get(k)})
	}
	return items
}

func (d *MultiDict) Lists() []ListItem {
	if d == nil {
		return []ListItem{}
	}
	lists := make([]ListItem, 0, len(d.keys))
	for _, k := range d.keys {
		lists = append(lists, ListItem{k, d.GetList(k)})
	}
	return lists
}

func (d *MultiDict) Values() []string {
	if d == nil {
		return []string{}
	}
	values := make([]string, 0, len(d.keys))
	for _, k := range d.keys {
		values = append(values, d.Get(k))
	}
	return values
}

// Copy returns a deep copy of d. No list is shared between the two.
func (d *MultiDict) Copy() *MultiDict {
	if d == nil {
		return &MultiDict{}
	}
	cp := &MultiDict{
		keys:  append([]string(nil), d.keys...),
		lists: make(map[string][]string, len(d.lists)),
	}
	for k, list := range d.lists {
		cp.lists[k] = append([]string{}, list...)
	}
	return cp
}

// Merge extends d with other. A *MultiDict contributes its whole list for
// each key, appended after the values d already holds. A Flat contributes
// one new value per key. A nil *MultiDict contributes nothing.
func (d *MultiDict) Merge(other MergeSource) {
	switch o := other.(type) {
	case *MultiDict:
		for _, li := range o.Lists() {
			d.SetListDefault(li.Key, nil)
			d.lists[li.Key] = append(d.lists[li.Key], li.Values...)
		}
	case Flat:
		for _, it := range o.Items() {
			d.Append(it.Key, it.Value)
		}
	default:
		panic(fmt.Errorf("unknown merge source: %#v", other))
	}
}

func (d *MultiDict) String() string {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("MultiDict{")
	for i, k := range d.Keys() {
		if i > 0 {
			buf.WriteString(", ")
		}
		_, _ = fmt.Fprintf(buf, "%q: %q", k, d.lists[k])
	}
	buf.WriteString("}")
	return buf.String()
}

func (d *MultiDict) store(key string, list []string) {
	if d.lists == nil {
		d.lists = make(map[string][]string)
	}
	if _, ok := d.lists[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.lists[key] = list
}

func (*MultiDict) isMergeSource() {}
