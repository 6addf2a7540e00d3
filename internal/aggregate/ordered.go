package aggregate

// Ordered is a string-keyed map that iterates in first-insertion order.
// Report ordering depends on it, so plain Go maps are never ranged over.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

func newOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{values: make(map[string]V)}
}

// getOrCreate returns the value for key, inserting mk() on first use.
func (o *Ordered[V]) getOrCreate(key string, mk func() V) V {
	if v, ok := o.values[key]; ok {
		return v
	}
	v := mk()
	o.keys = append(o.keys, key)
	o.values[key] = v
	return v
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// Each calls fn for every entry in insertion order.
func (o *Ordered[V]) Each(fn func(key string, value V)) {
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

// labelSet is an ordered set of distinct labels.
type labelSet struct {
	items []string
	seen  map[string]struct{}
}

func newLabelSet() *labelSet {
	return &labelSet{seen: make(map[string]struct{})}
}

func (s *labelSet) add(label string) {
	if _, ok := s.seen[label]; ok {
		return
	}
	s.seen[label] = struct{}{}
	s.items = append(s.items, label)
}

func (s *labelSet) list() []string {
	return append([]string(nil), s.items...)
}
