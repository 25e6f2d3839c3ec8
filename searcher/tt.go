package searcher

import (
	"container/list"

	"ropes/game"
	"ropes/meta"
)

type Bound uint8

const (
	Exact Bound = iota
	Lower       // Score is a lower bound (fail high)
	Upper       // Score is an upper bound (fail low)
)

// Entry is a stored search result. Score is from the perspective of the
// player to move at the stored node, with decided-game scores counted from
// that node.
type Entry struct {
	Depth   int
	Score   float64
	Bound   Bound
	Best    game.Move
	HasBest bool
}

type TableStats struct {
	Probes    int64
	Hits      int64
	Stores    int64
	Evictions int64
}

type tableItem struct {
	key   game.StateHash
	entry Entry
}

// TranspositionTable caches search results by state hash and evicts the
// least recently used entry once full. It belongs to a single engine and is
// not safe for concurrent use.
type TranspositionTable struct {
	capacity int
	items    map[game.StateHash]*list.Element
	order    *list.List // Front is most recently used
	stats    TableStats
}

func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity <= 0 {
		capacity = meta.TABLE_CAPACITY
	}
	return &TranspositionTable{
		capacity: capacity,
		items:    make(map[game.StateHash]*list.Element),
		order:    list.New(),
	}
}

func (t *TranspositionTable) Probe(key game.StateHash) (Entry, bool) {
	t.stats.Probes++
	el, ok := t.items[key]
	if !ok {
		return Entry{}, false
	}
	t.stats.Hits++
	t.order.MoveToFront(el)
	return el.Value.(*tableItem).entry, true
}

// Store records e under key. An existing deeper entry is kept, but still
// counts as recently used.
func (t *TranspositionTable) Store(key game.StateHash, e Entry) {
	t.stats.Stores++
	if el, ok := t.items[key]; ok {
		item := el.Value.(*tableItem)
		if e.Depth >= item.entry.Depth {
			item.entry = e
		}
		t.order.MoveToFront(el)
		return
	}

	if t.order.Len() >= t.capacity {
		oldest := t.order.Back()
		t.order.Remove(oldest)
		delete(t.items, oldest.Value.(*tableItem).key)
		t.stats.Evictions++
	}
	t.items[key] = t.order.PushFront(&tableItem{key: key, entry: e})
}

func (t *TranspositionTable) Len() int      { return t.order.Len() }
func (t *TranspositionTable) Capacity() int { return t.capacity }

func (t *TranspositionTable) Stats() TableStats { return t.stats }

func (t *TranspositionTable) Clear() {
	t.items = make(map[game.StateHash]*list.Element)
	t.order.Init()
}

// toTableScore and fromTableScore translate decided-game scores between
// root-relative and node-relative distances.
func toTableScore(score float64, ply int) float64 {
	switch {
	case score >= game.WinScore/2:
		return score + float64(ply)
	case score <= -game.WinScore/2:
		return score - float64(ply)
	}
	return score
}

func fromTableScore(score float64, ply int) float64 {
	switch {
	case score >= game.WinScore/2:
		return score - float64(ply)
	case score <= -game.WinScore/2:
		return score + float64(ply)
	}
	return score
}
