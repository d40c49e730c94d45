package cfr

import (
	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

// DefaultBuckets is the per-shard bucket count for production runs.
const DefaultBuckets = 10_000_000

// Table is the sharded chained hash table of information-set nodes. Each
// shard owns a contiguous bucket arena that only its training goroutine ever
// touches, so no locking is needed.
type Table struct {
	shards  [][]*Node
	counts  []int
	buckets int
}

// NewTable allocates shardCount arenas of bucketsPerShard chains each.
func NewTable(shardCount, bucketsPerShard int) *Table {
	t := &Table{
		shards:  make([][]*Node, shardCount),
		counts:  make([]int, shardCount),
		buckets: bucketsPerShard,
	}
	for i := range t.shards {
		t.shards[i] = make([]*Node, bucketsPerShard)
	}
	return t
}

// fnv1a hashes the key bytes with 32-bit FNV-1a.
func fnv1a(k *abstraction.Key) uint32 {
	h := uint32(2166136261)
	for _, b := range k {
		h ^= uint32(b)
		h *= 16777619
	}
	return h
}

// actionsMatch reports set equality. Legal-action lists never repeat a class,
// so equal length plus membership is sufficient.
func actionsMatch(a []game.Action, b []game.Action) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GetOrCreate finds the node for (key, actions) in the shard's arena,
// inserting a fresh one at the head of its chain when absent.
func (t *Table) GetOrCreate(shard int, key abstraction.Key, actions []game.Action) *Node {
	idx := fnv1a(&key) % uint32(t.buckets)
	arena := t.shards[shard]

	for cur := arena[idx]; cur != nil; cur = cur.next {
		if cur.Key == key && actionsMatch(cur.Actions, actions) {
			return cur
		}
	}

	node := newNode(key, actions)
	node.next = arena[idx]
	arena[idx] = node
	t.counts[shard]++
	return node
}

// NodeCount returns the total node count across all shards. Only safe once
// the shard goroutines have joined.
func (t *Table) NodeCount() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// ShardNodeCount returns the node count for one shard. Each count is only
// written by its owning shard, so a shard may read its own mid-run.
func (t *Table) ShardNodeCount(shard int) int {
	return t.counts[shard]
}

// Walk visits every node, shard by shard, bucket by bucket.
func (t *Table) Walk(fn func(*Node) error) error {
	for _, arena := range t.shards {
		for _, head := range arena {
			for cur := head; cur != nil; cur = cur.next {
				if err := fn(cur); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
