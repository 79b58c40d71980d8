package automata

import "iter"

// HashMap Chained hash table keyed by Hashable values. The interning tables
// of subset construction and the asynchronous product key on frozen state
// sets, which Go's built-in map cannot hold; each construction owns its own
// table, so no locking is needed (all algorithms here are single-threaded).
type HashMap[T any] struct {
	buckets    []*Entry[T]
	size       int
	mask       uint64
	emptyValue T
	loadFactor float64
}

// Entry Hash table entry.
type Entry[T any] struct {
	key   Hashable
	value T
	next  *Entry[T]
}

type optionsHashMap struct {
	capacity   int
	loadFactor float64
}

func newOptionsHashMap(opts ...OptionsHashMap) *optionsHashMap {
	options := &optionsHashMap{
		capacity:   1,
		loadFactor: 0.75,
	}

	for _, opt := range opts {
		opt(options)
	}

	realCap := 1
	for realCap < options.capacity {
		realCap <<= 1
	}
	options.capacity = realCap

	return options
}

type OptionsHashMap func(hashMap *optionsHashMap)

// WithCapacity Initial capacity; rounded up to a power of two.
func WithCapacity(capacity int) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.capacity = capacity
	}
}

func WithLoadFactor(loadFactor float64) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.loadFactor = loadFactor
	}
}

func NewHashMap[T any](options ...OptionsHashMap) *HashMap[T] {
	opt := newOptionsHashMap(options...)

	return &HashMap[T]{
		buckets:    make([]*Entry[T], opt.capacity),
		mask:       uint64(opt.capacity - 1),
		loadFactor: opt.loadFactor,
	}
}

// Set Inserts or updates a key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	hash := key.Hash()
	index := hash & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &Entry[T]{
		key:   key,
		value: value,
		next:  m.buckets[index],
	}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	hash := key.Hash()
	index := hash & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	return m.emptyValue, false
}

func (m *HashMap[T]) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*Entry[T], newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			newIndex := e.key.Hash() & newMask
			newBuckets[newIndex] = &Entry[T]{
				key:   e.key,
				value: e.value,
				next:  newBuckets[newIndex],
			}
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}

func (m *HashMap[T]) Size() int {
	return m.size
}

func (m *HashMap[T]) Iterator() iter.Seq2[Hashable, T] {
	return func(yield func(Hashable, T) bool) {
		for _, bucket := range m.buckets {
			for e := bucket; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
