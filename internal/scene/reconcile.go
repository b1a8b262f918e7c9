package scene

// Diff compares a tracked key set with the next snapshot.
// toAdd holds keys of next missing from tracked, in next's order with
// duplicates collapsed; toRemove holds keys of tracked missing from next, in
// tracked's order. Keys are compared with ==.
func Diff[K comparable](tracked, next []K) (toAdd, toRemove []K) {
	inTracked := make(map[K]struct{}, len(tracked))
	for _, k := range tracked {
		inTracked[k] = struct{}{}
	}

	inNext := make(map[K]struct{}, len(next))
	for _, k := range next {
		if _, dup := inNext[k]; dup {
			continue
		}
		inNext[k] = struct{}{}
		if _, ok := inTracked[k]; !ok {
			toAdd = append(toAdd, k)
		}
	}

	for _, k := range tracked {
		if _, ok := inNext[k]; !ok {
			toRemove = append(toRemove, k)
		}
	}
	return toAdd, toRemove
}

// Collection is an ordered set of keyed items, each backed by a handle.
// Membership only changes through Reconcile and Clear.
type Collection[K comparable, H any] struct {
	keys  []K
	items map[K]H
}

// NewCollection creates an empty collection.
func NewCollection[K comparable, H any]() *Collection[K, H] {
	return &Collection[K, H]{items: make(map[K]H)}
}

// Len returns the number of tracked items.
func (c *Collection[K, H]) Len() int {
	return len(c.keys)
}

// Keys returns the tracked keys in insertion order.
func (c *Collection[K, H]) Keys() []K {
	out := make([]K, len(c.keys))
	copy(out, c.keys)
	return out
}

// Get returns the handle tracked for a key.
func (c *Collection[K, H]) Get(k K) (H, bool) {
	h, ok := c.items[k]
	return h, ok
}

// Reconcile brings the collection in line with next.
// add is called for every new key and its handle is tracked; remove is called
// for every key that disappeared, after it has already been dropped.
func (c *Collection[K, H]) Reconcile(next []K, add func(K) H, remove func(K, H)) (added, removed []K) {
	toAdd, toRemove := Diff(c.keys, next)

	for _, k := range toAdd {
		c.items[k] = add(k)
		c.keys = append(c.keys, k)
	}

	if len(toRemove) > 0 {
		gone := make(map[K]struct{}, len(toRemove))
		for _, k := range toRemove {
			gone[k] = struct{}{}
		}
		kept := c.keys[:0]
		for _, k := range c.keys {
			if _, ok := gone[k]; !ok {
				kept = append(kept, k)
			}
		}
		c.keys = kept

		for _, k := range toRemove {
			h := c.items[k]
			delete(c.items, k)
			remove(k, h)
		}
	}

	return toAdd, toRemove
}

// Clear drops every item, calling remove for each in insertion order.
func (c *Collection[K, H]) Clear(remove func(K, H)) {
	keys := c.keys
	items := c.items
	c.keys = nil
	c.items = make(map[K]H)
	for _, k := range keys {
		remove(k, items[k])
	}
}
