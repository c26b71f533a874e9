package dispatcher

import (
	"sort"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// unionFind is a standard disjoint-set structure over transaction indices,
// used to group transactions that touch the same sender or receiver into
// one connected component before sharding (spec.md §4.1 "Batch splitting":
// "partition transactions into shards such that no two transactions
// touching the same account land in different shards").
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// component is one connected group of transaction indices that must land in
// the same shard together.
type component struct {
	indices []int
}

// Split partitions txs (already classified) into at most numShards groups
// of transaction indices, per spec.md §4.1 "Batch splitting for
// parallelism": non-transfer transactions all land in group 0 on a single
// shard; transfer transactions are partitioned across the remaining
// shards by their sender/receiver dependency graph, preserving invariant
// I2 (any two transfers sharing an address land in the same shard).
// Accounts with no overlap are free to land in different shards,
// load-balanced by greedily assigning the largest remaining component to
// the currently smallest shard (a standard bin-packing heuristic; optimal
// partitioning is NP-hard and unnecessary here).
func Split(classifications []TxClassification, numShards int) [][]int {
	n := len(classifications)
	if numShards < 1 {
		numShards = 1
	}
	shards := make([][]int, numShards)
	if n == 0 {
		return shards
	}

	var transferIdx []int
	for i, c := range classifications {
		if c.IsPureTransfer {
			transferIdx = append(transferIdx, i)
		} else {
			shards[0] = append(shards[0], i)
		}
	}

	// With a single shard there is nothing to distribute transfers across;
	// everything, transfers included, runs in group 0.
	transferShards := numShards - 1
	if transferShards < 1 {
		shards[0] = append(shards[0], transferIdx...)
		sort.Ints(shards[0])
		return shards
	}

	uf := newUnionFind(n)
	lastTouch := make(map[runtimetypes.Address]int, len(transferIdx)*2)
	for _, i := range transferIdx {
		c := classifications[i]
		for _, addr := range []runtimetypes.Address{c.Sender, c.Receiver} {
			if addr.IsZero() {
				continue
			}
			if prev, ok := lastTouch[addr]; ok {
				uf.union(prev, i)
			}
			lastTouch[addr] = i
		}
	}

	groups := make(map[int][]int)
	for _, i := range transferIdx {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	components := make([]component, 0, len(groups))
	for _, indices := range groups {
		components = append(components, component{indices: indices})
	}
	sort.Slice(components, func(i, j int) bool {
		return len(components[i].indices) > len(components[j].indices)
	})

	shardSize := make([]int, transferShards)
	for _, comp := range components {
		target := 0
		for s := 1; s < transferShards; s++ {
			if shardSize[s] < shardSize[target] {
				target = s
			}
		}
		shards[target+1] = append(shards[target+1], comp.indices...)
		shardSize[target] += len(comp.indices)
	}
	for s := range shards {
		sort.Ints(shards[s])
	}
	return shards
}
