package bench

import (
	"slices"

	"go.uber.org/zap"

	"github.com/konradgierczak7/SD-projekt-2/priority"
	"github.com/konradgierczak7/SD-projekt-2/queue"
	"github.com/konradgierczak7/SD-projekt-2/sortedlist"
)

// Operation names, as they appear in results and metric labels.
const (
	OpInsert         = "insert"
	OpRemove         = "remove"
	OpPeek           = "peek"
	OpSize           = "size"
	OpChangePriority = "change_priority"
)

// target adapts an implementation to the harness.
type target interface {
	queue.Queue
	// reset readies the target for the next run.
	reset()
	// changePriority reports whether the value was found. A hard failure is
	// returned as an error.
	changePriority(value, newPriority int) (bool, error)
}

// plan fixes what each timed call does for an implementation.
type plan struct {
	order []string // timing order within a run

	loadOffset int // added to every loaded priority

	insertValue    int
	insertPriority func(s Suite, draw int) int

	changeValue    func(s Suite) int
	changePriority func(s Suite) int
}

// OperationsFor returns the operations timed for impl, in timing order.
func OperationsFor(impl Impl) []string {
	return slices.Clone(planFor(impl).order)
}

func planFor(impl Impl) plan {
	if impl == ImplList {
		return plan{
			order:          []string{OpInsert, OpRemove, OpSize, OpPeek, OpChangePriority},
			loadOffset:     1,
			insertValue:    3,
			insertPriority: func(s Suite, _ int) int { return s.BaseSize / 2 },
			changeValue:    func(s Suite) int { return s.BaseSize / 2 },
			changePriority: func(s Suite) int { return s.BaseSize + 5 },
		}
	}
	return plan{
		order:          []string{OpInsert, OpChangePriority, OpPeek, OpRemove, OpSize},
		insertValue:    999999,
		insertPriority: func(_ Suite, draw int) int { return draw },
		changeValue:    func(Suite) int { return 500 },
		changePriority: func(Suite) int { return 10000 },
	}
}

func newTarget(impl Impl, logger *zap.Logger) target {
	if impl == ImplList {
		t := &listTarget{logger: logger}
		t.reset()
		return t
	}
	return &heapTarget{Heap: priority.NewHeap(priority.WithLogger(logger))}
}

type heapTarget struct {
	*priority.Heap
}

func (t *heapTarget) reset() {
	t.Clear()
}

func (t *heapTarget) changePriority(value, newPriority int) (bool, error) {
	if err := t.ChangePriority(value, newPriority); err != nil {
		return false, err
	}
	return true, nil
}

type listTarget struct {
	*sortedlist.List
	logger *zap.Logger
}

func (t *listTarget) reset() {
	t.List = sortedlist.New(sortedlist.WithLogger(t.logger))
}

func (t *listTarget) changePriority(value, newPriority int) (bool, error) {
	return t.ChangePriority(value, newPriority), nil
}

