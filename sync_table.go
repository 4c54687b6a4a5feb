package chaintable

import (
	"sync"
	"unsafe"
)

// SyncTable is a Table guarded by a single mutex.
//
// The whole foundation sits behind one lock: a rehash moves nodes across
// bucket boundaries, so per-bucket locking cannot protect it.
//
// A SyncTable must not be copied after first use.
type SyncTable struct {
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		mu    sync.Mutex
		table Table
	}{})%CacheLineSize) % CacheLineSize]byte

	_     noCopy
	mu    sync.Mutex
	table Table
}

// NewSyncTable creates a new SyncTable. It accepts the same options as
// NewTable.
func NewSyncTable(options ...func(*TableConfig)) *SyncTable {
	var cfg TableConfig
	for _, opt := range options {
		opt(&cfg)
	}
	s := &SyncTable{}
	s.table.init(&cfg)
	return s
}

// Put is the locked variant of Table.Put.
func (s *SyncTable) Put(node *Node) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Put(node)
}

// PutString is the locked variant of Table.PutString.
func (s *SyncTable) PutString(value string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.PutString(value)
}

// LoadFactor returns the current load factor.
func (s *SyncTable) LoadFactor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.LoadFactor()
}

// Capacity returns the current number of buckets.
func (s *SyncTable) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Capacity()
}

// Len returns the number of stored nodes.
func (s *SyncTable) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Len()
}

// Buckets returns a snapshot of every bucket's values.
func (s *SyncTable) Buckets() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Buckets()
}

// Stats returns statistics for the underlying Table.
func (s *SyncTable) Stats() *TableStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Stats()
}

// String implement the formatting output interface fmt.Stringer.
func (s *SyncTable) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.String()
}

// Do runs fn with the lock held. fn must not retain the Table.
func (s *SyncTable) Do(fn func(t *Table)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.table)
}

// noCopy may be embedded into structs which must not be copied
// after the first use. See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
