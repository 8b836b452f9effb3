// Package tally turns a stream of parsed events into per-category counts.
package tally

import (
	"errors"
	"slices"

	"github.com/pthm/uniformcheck/internal/parser"
)

// ErrNoResponses is returned when the stream held no well-formed responses
var ErrNoResponses = errors.New("no responses parsed")

// Source records where the category order came from
type Source int

const (
	// SourceInstances means the order is the first-seen INSTANCE: list
	SourceInstances Source = iota
	// SourceResponses means no instances were seen and the order is the
	// sorted set of response IDs
	SourceResponses
)

func (s Source) String() string {
	if s == SourceResponses {
		return "responses"
	}
	return "instances"
}

// Bucket is one category ID with its observed count
type Bucket struct {
	ID    uint64 `json:"id" yaml:"id"`
	Count int    `json:"count" yaml:"count"`
}

// Table is the tabulated result. Order and Counts are aligned positionally.
type Table struct {
	Order  []uint64
	Counts []int
	Total  int
	Source Source

	// Unlisted holds responses whose ID is absent from Order. They are
	// included in Total. Only possible when Source is SourceInstances.
	Unlisted []Bucket
}

// K returns the number of categories
func (t *Table) K() int {
	return len(t.Order)
}

// Buckets returns Order and Counts zipped together
func (t *Table) Buckets() []Bucket {
	out := make([]Bucket, len(t.Order))
	for i, id := range t.Order {
		out[i] = Bucket{ID: id, Count: t.Counts[i]}
	}
	return out
}

// Listed returns the sum of Counts, i.e. Total minus unlisted responses
func (t *Table) Listed() int {
	n := 0
	for _, c := range t.Counts {
		n += c
	}
	return n
}

// Tabulator accumulates events one at a time
type Tabulator struct {
	instances *OrderedSet
	responses map[uint64]int
	// first-seen order of response IDs, used to report unlisted IDs stably
	responseOrder *OrderedSet
}

// NewTabulator creates an empty Tabulator
func NewTabulator() *Tabulator {
	return &Tabulator{
		instances:     NewOrderedSet(),
		responses:     make(map[uint64]int),
		responseOrder: NewOrderedSet(),
	}
}

// Add consumes one event. Ignored events are dropped.
func (t *Tabulator) Add(ev parser.Event) {
	switch ev.Kind {
	case parser.KindInstance:
		t.instances.Add(ev.CategoryID)
	case parser.KindResponse:
		t.responses[ev.CategoryID]++
		t.responseOrder.Add(ev.CategoryID)
	}
}

// Table builds the final table. It returns ErrNoResponses when no
// response was added.
func (t *Tabulator) Table() (*Table, error) {
	total := 0
	for _, c := range t.responses {
		total += c
	}
	if total == 0 {
		return nil, ErrNoResponses
	}

	tbl := &Table{Total: total}
	if t.instances.Len() > 0 {
		tbl.Order = t.instances.Items()
		tbl.Source = SourceInstances
	} else {
		tbl.Order = make([]uint64, 0, len(t.responses))
		for id := range t.responses {
			tbl.Order = append(tbl.Order, id)
		}
		slices.Sort(tbl.Order)
		tbl.Source = SourceResponses
	}

	tbl.Counts = make([]int, len(tbl.Order))
	for i, id := range tbl.Order {
		tbl.Counts[i] = t.responses[id]
	}

	for _, id := range t.responseOrder.Items() {
		if tbl.Source == SourceInstances && !t.instances.Contains(id) {
			tbl.Unlisted = append(tbl.Unlisted, Bucket{ID: id, Count: t.responses[id]})
		}
	}
	return tbl, nil
}

// Tabulate is a convenience wrapper over Tabulator for a complete event slice
func Tabulate(events []parser.Event) (*Table, error) {
	t := NewTabulator()
	for _, ev := range events {
		t.Add(ev)
	}
	return t.Table()
}
