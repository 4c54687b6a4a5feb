package chaintable

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

const (
	// defaultCapacity is the number of buckets of a table created without
	// WithCapacity, and the fallback for non-positive capacities.
	defaultCapacity = 4
	// defaultThreshold is the load factor above which a table rehashes.
	defaultThreshold = 0.75
)

// Table is a separate-chaining hash table over a resizable array of bucket
// chains (the foundation).
//
// Nodes are kept in an arena owned by the table and chained through Handle
// links, so a rehash only rewrites links and never allocates new nodes.
// After every insertion the load factor (stored nodes / buckets) is brought
// up to date and, when it exceeds the threshold, the foundation is doubled
// and every node is reinserted through the regular insertion path.
//
// The table only grows. Relative order inside a bucket is reversed by each
// rehash, because reinsertion prepends.
//
// The zero value is an empty table; it gets the default capacity and
// threshold on the first put.
//
// A Table is not safe for concurrent use; see SyncTable.
type Table struct {
	foundation  []Handle
	nodes       []Node
	count       int
	loadFactor  float64
	threshold   float64
	growths     int
	hash        HashFunc
	fullRecount bool         // WithFullRecount
	logger      *slog.Logger // WithLogger
}

// TableConfig defines configurable Table options.
type TableConfig struct {
	capacity    int
	threshold   float64
	hash        HashFunc
	fullRecount bool
	logger      *slog.Logger
}

// WithCapacity configures the initial number of buckets.
// If capacity is zero or negative, the value is ignored and the default
// capacity of 4 is used.
func WithCapacity(capacity int) func(*TableConfig) {
	return func(c *TableConfig) {
		c.capacity = capacity
	}
}

// WithThreshold configures the load factor above which the table doubles.
// Values outside (0, 1] are ignored and the default of 0.75 is used.
func WithThreshold(threshold float64) func(*TableConfig) {
	return func(c *TableConfig) {
		c.threshold = threshold
	}
}

// WithHashFunc configures the hash function PutString uses to build nodes.
// Nodes passed to Put keep the hash code they were constructed with.
func WithHashFunc(hash HashFunc) func(*TableConfig) {
	return func(c *TableConfig) {
		c.hash = hash
	}
}

// WithFullRecount makes the table recount every chain after each insertion
// to compute the load factor, an O(n) step per put. By default a running
// node count is kept and the update is O(1). The reported values are the
// same either way.
func WithFullRecount() func(*TableConfig) {
	return func(c *TableConfig) {
		c.fullRecount = true
	}
}

// WithLogger configures a logger for rehash events, emitted at debug level.
func WithLogger(logger *slog.Logger) func(*TableConfig) {
	return func(c *TableConfig) {
		c.logger = logger
	}
}

// NewTable creates a new Table.
//
// Parameters:
//   - WithCapacity option for the initial bucket count (default 4)
//   - WithThreshold option for the rehash trigger (default 0.75)
//   - WithHashFunc option for the hash function used by PutString
//   - WithFullRecount option to recount all chains on every put
//   - WithLogger option to log rehash events
func NewTable(options ...func(*TableConfig)) *Table {
	var cfg TableConfig
	for _, opt := range options {
		opt(&cfg)
	}
	t := &Table{}
	t.init(&cfg)
	return t
}

func (t *Table) init(cfg *TableConfig) {
	capacity := cfg.capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	threshold := cfg.threshold
	// NaN fails both comparisons and falls through to the default too.
	if !(threshold > 0 && threshold <= 1) {
		threshold = defaultThreshold
	}
	hash := cfg.hash
	if hash == nil {
		hash = StringHash
	}
	t.foundation = make([]Handle, capacity)
	t.threshold = threshold
	t.hash = hash
	t.fullRecount = cfg.fullRecount
	t.logger = cfg.logger
}

func (t *Table) lazyInit() {
	if t.foundation == nil {
		t.init(&TableConfig{})
	}
}

// Put chains node into the table and returns its Handle. The node is
// copied into the table's arena and its incoming link is discarded.
// A nil node is ignored and Nil is returned.
func (t *Table) Put(node *Node) Handle {
	if node == nil {
		return Nil
	}
	t.lazyInit()
	t.nodes = append(t.nodes, Node{value: node.value, hash: node.hash})
	h := Handle(len(t.nodes))
	t.link(h)
	return h
}

// PutString wraps value in a Node hashed with the table's hash function
// and chains it. An empty value is ignored and Nil is returned.
func (t *Table) PutString(value string) Handle {
	if value == "" {
		return Nil
	}
	t.lazyInit()
	return t.Put(NewNodeWithHash(value, t.hash))
}

// link is the insertion path shared by Put and rehash: the node is pushed
// at the head of its bucket, the load factor is refreshed and the table
// doubles when the factor exceeds the threshold.
func (t *Table) link(h Handle) {
	n := &t.nodes[h.slot()]
	destination := bucketIndex(n.hash, len(t.foundation))
	n.next = t.foundation[destination]
	t.foundation[destination] = h
	t.count++

	t.updateLoadFactor()
	if t.loadFactor > t.threshold {
		t.rehash()
	}
}

// bucketIndex maps a hash code to [0, length). Negative hash codes are
// folded into range instead of producing a negative index.
//
//go:nosplit
func bucketIndex(hash int32, length int) int {
	n := int64(length)
	return int((int64(hash)%n + n) % n)
}

func (t *Table) updateLoadFactor() {
	if t.fullRecount {
		count := 0
		for _, head := range t.foundation {
			for h := head; h != Nil; h = t.nodes[h.slot()].next {
				count++
			}
		}
		t.count = count
	}
	t.loadFactor = float64(t.count) / float64(len(t.foundation))
}

// rehash doubles the foundation and reinserts every node, bucket by bucket
// and head to tail. Reinsertion may itself trigger a further rehash; the
// remaining nodes then land in the newest foundation.
func (t *Table) rehash() {
	old := t.foundation
	t.foundation = make([]Handle, len(old)*2)
	t.count = 0
	t.loadFactor = 0
	t.growths++
	if t.logger != nil {
		t.logger.Debug("rehash",
			"from", len(old),
			"to", len(t.foundation),
			"size", len(t.nodes),
			"growths", t.growths)
	}

	for _, head := range old {
		for h := head; h != Nil; {
			n := &t.nodes[h.slot()]
			next := n.next
			n.next = Nil
			t.link(h)
			h = next
		}
	}
}

// LoadFactor returns the number of stored nodes divided by the bucket count.
func (t *Table) LoadFactor() float64 {
	return t.loadFactor
}

// Threshold returns the load factor above which the table rehashes.
func (t *Table) Threshold() float64 {
	if t.foundation == nil {
		return defaultThreshold
	}
	return t.threshold
}

// Capacity returns the current number of buckets.
func (t *Table) Capacity() int {
	return len(t.foundation)
}

// Len returns the number of stored nodes.
func (t *Table) Len() int {
	return t.count
}

// Growths returns how many times the foundation has doubled.
func (t *Table) Growths() int {
	return t.growths
}

// Head returns the first node of the chain at bucket, or Nil when the
// bucket is empty or out of range.
func (t *Table) Head(bucket int) Handle {
	if bucket < 0 || bucket >= len(t.foundation) {
		return Nil
	}
	return t.foundation[bucket]
}

// Node returns a copy of the node identified by h.
func (t *Table) Node(h Handle) (Node, bool) {
	if h == Nil || h.slot() >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[h.slot()], true
}

// Range calls yield for every node, bucket by bucket and head to tail,
// until yield returns false. The table must not be modified during Range.
func (t *Table) Range(yield func(bucket int, node Node) bool) {
	for i, head := range t.foundation {
		for h := head; h != Nil; {
			n := t.nodes[h.slot()]
			if !yield(i, n) {
				return
			}
			h = n.next
		}
	}
}

// All compatible with `for bucket, node := range t.All()`
func (t *Table) All() func(yield func(int, Node) bool) {
	return t.Range
}

// Buckets returns the values of every bucket, head to tail.
func (t *Table) Buckets() [][]string {
	buckets := make([][]string, len(t.foundation))
	for i := range buckets {
		buckets[i] = []string{}
	}
	t.Range(func(bucket int, node Node) bool {
		buckets[bucket] = append(buckets[bucket], node.value)
		return true
	})
	return buckets
}

// String implement the formatting output interface fmt.Stringer.
// Each bucket is listed on its own line with its values head to tail.
func (t *Table) String() string {
	var sb strings.Builder
	for i, head := range t.foundation {
		fmt.Fprintf(&sb, "[ %03d ]: ", i)
		for h := head; h != Nil; {
			n := &t.nodes[h.slot()]
			fmt.Fprintf(&sb, "<%s> ", n.value)
			h = n.next
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// TableDump is the serializable form of a Table.
type TableDump struct {
	Capacity   int          `json:"capacity" yaml:"capacity"`
	Size       int          `json:"size" yaml:"size"`
	LoadFactor float64      `json:"load_factor" yaml:"load_factor"`
	Threshold  float64      `json:"threshold" yaml:"threshold"`
	Growths    int          `json:"growths" yaml:"growths"`
	Buckets    []BucketDump `json:"buckets" yaml:"buckets"`
}

// BucketDump lists the values of one bucket, head to tail.
type BucketDump struct {
	Index  int      `json:"index" yaml:"index"`
	Values []string `json:"values" yaml:"values,flow"`
}

// Dump returns a serializable snapshot of the table.
func (t *Table) Dump() TableDump {
	d := TableDump{
		Capacity:   t.Capacity(),
		Size:       t.count,
		LoadFactor: t.loadFactor,
		Threshold:  t.Threshold(),
		Growths:    t.growths,
		Buckets:    make([]BucketDump, 0, len(t.foundation)),
	}
	for i, values := range t.Buckets() {
		d.Buckets = append(d.Buckets, BucketDump{Index: i, Values: values})
	}
	return d
}

var jsonMarshal func(v any) ([]byte, error)

// SetDefaultJSONMarshal sets the JSON serialization function used by
// MarshalJSON. If not set, the standard library is used by default.
func SetDefaultJSONMarshal(marshal func(v any) ([]byte, error)) {
	jsonMarshal = marshal
}

// MarshalJSON JSON serialization
func (t *Table) MarshalJSON() ([]byte, error) {
	if jsonMarshal != nil {
		return jsonMarshal(t.Dump())
	}
	return json.Marshal(t.Dump())
}

// MarshalYAML implements the gopkg.in/yaml.v3 Marshaler interface.
func (t *Table) MarshalYAML() (any, error) {
	return t.Dump(), nil
}

// Stats returns statistics for the Table. It's an O(N) operation,
// so it should be used only for diagnostics or debugging purposes.
func (t *Table) Stats() *TableStats {
	stats := &TableStats{
		Buckets:      len(t.foundation),
		LoadFactor:   t.loadFactor,
		Threshold:    t.Threshold(),
		TotalGrowths: t.growths,
	}
	if len(t.foundation) == 0 {
		return stats
	}
	stats.MinChain = math.MaxInt
	for _, head := range t.foundation {
		chain := 0
		for h := head; h != Nil; h = t.nodes[h.slot()].next {
			chain++
		}
		stats.Size += chain
		if chain == 0 {
			stats.EmptyBuckets++
		}
		if chain < stats.MinChain {
			stats.MinChain = chain
		}
		if chain > stats.MaxChain {
			stats.MaxChain = chain
		}
	}
	return stats
}

// TableStats is Table statistics.
type TableStats struct {
	// Buckets is the length of the foundation.
	Buckets int
	// EmptyBuckets is the number of buckets that hold no nodes.
	EmptyBuckets int
	// Size is the number of nodes found by walking every chain.
	Size int
	// MinChain is the length of the shortest chain.
	MinChain int
	// MaxChain is the length of the longest chain.
	MaxChain int
	// LoadFactor is the load factor the table last computed.
	LoadFactor float64
	// Threshold is the rehash trigger.
	Threshold float64
	// TotalGrowths is the number of times the foundation doubled.
	TotalGrowths int
}

// ToString returns string representation of table stats.
func (s *TableStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("TableStats{\n")
	sb.WriteString(fmt.Sprintf("Buckets:      %d\n", s.Buckets))
	sb.WriteString(fmt.Sprintf("EmptyBuckets: %d\n", s.EmptyBuckets))
	sb.WriteString(fmt.Sprintf("Size:         %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("MinChain:     %d\n", s.MinChain))
	sb.WriteString(fmt.Sprintf("MaxChain:     %d\n", s.MaxChain))
	sb.WriteString(fmt.Sprintf("LoadFactor:   %.4f\n", s.LoadFactor))
	sb.WriteString(fmt.Sprintf("Threshold:    %.4f\n", s.Threshold))
	sb.WriteString(fmt.Sprintf("TotalGrowths: %d\n", s.TotalGrowths))
	sb.WriteString("}\n")
	return sb.String()
}
