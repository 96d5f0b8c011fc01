package multidict

import "sort"

// Flat is an ordinary single-valued mapping. It is iterated in sorted key
// order.
type Flat map[string]string

// MergeSource is what MultiDict.Merge accepts: either a *MultiDict or a
// Flat.
type MergeSource interface {
	isMergeSource()
}

// Source is the read capability MergedView needs from each of its
// sources. *MultiDict and Flat implement it.
type Source interface {
	Lookup(key string) (string, bool)
	GetList(key string) []string
	Has(key string) bool
	Items() []Item
}

var (
	_ Source = (*MultiDict)(nil)
	_ Source = Flat(nil)
)

func (f Flat) Lookup(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func (f Flat) GetList(key string) []string {
	if v, ok := f[key]; ok {
		return []string{v}
	}
	return []string{}
}

func (f Flat) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Flat) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f Flat) Items() []Item {
	items := make([]Item, 0, len(f))
	for _, k := range f.Keys() {
		items = append(items, Item{k, f[k]})
	}
	return items
}

func (Flat) isMergeSource() {}
