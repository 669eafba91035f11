// Package shipyard runs the parallel ship production queue: slot-bounded
// admission, chained order timing, refund-on-cancel, and completion into
// the fleet inventory.
package shipyard

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/steamraiders/internal/econ"
	"github.com/talgya/steamraiders/internal/notify"
)

// OrderStatus is the lifecycle state of a production order.
type OrderStatus string

const (
	StatusQueued    OrderStatus = "queued"
	StatusBuilding  OrderStatus = "building"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) active() bool {
	return s == StatusQueued || s == StatusBuilding
}

// Order is one production run of a single blueprint. Timestamps are Unix
// milliseconds.
type Order struct {
	ID          string      `json:"id"`
	BlueprintID string      `json:"blueprintId"`
	Quantity    int         `json:"quantity"`
	StartTime   int64       `json:"startTime"`
	EndTime     int64       `json:"endTime"`
	Status      OrderStatus `json:"status"`
}

// MaxQueue caps the number of simultaneously active production orders.
const MaxQueue = 4

// InitialHangarCapacity is the slot budget of a fresh colony hangar.
const InitialHangarCapacity = 40

// Ledger is the resource backing the shipyard draws from — the colony
// in production, a stub in tests.
type Ledger interface {
	Spend(cost econ.Amounts) bool
	Refund(amount econ.Amounts)
}

// Snapshot is the persistable shipyard state. It round-trips exactly
// through the persistence layer.
type Snapshot struct {
	Queue          []Order        `json:"queue"`
	Inventory      map[string]int `json:"inventory"`
	HangarCapacity int            `json:"hangarCapacity"`
}

// Yard is the shipyard state container.
type Yard struct {
	mu             sync.Mutex
	queue          []Order
	inventory      map[string]int
	hangarCapacity int

	ledger   Ledger
	notifier *notify.Center
}

// New creates a shipyard with the default hangar and a small starting
// fleet of scout drones.
func New(ledger Ledger, notifier *notify.Center) *Yard {
	return &Yard{
		inventory:      map[string]int{"scoutDrone": 2},
		hangarCapacity: InitialHangarCapacity,
		ledger:         ledger,
		notifier:       notifier,
	}
}

// Restore rebuilds a shipyard from a persisted snapshot.
func Restore(snap Snapshot, ledger Ledger, notifier *notify.Center) *Yard {
	inventory := snap.Inventory
	if inventory == nil {
		inventory = make(map[string]int)
	}
	return &Yard{
		queue:          snap.Queue,
		inventory:      inventory,
		hangarCapacity: snap.HangarCapacity,
		ledger:         ledger,
		notifier:       notifier,
	}
}

// Snapshot captures the current persistable state.
func (y *Yard) Snapshot() Snapshot {
	y.mu.Lock()
	defer y.mu.Unlock()

	queue := make([]Order, len(y.queue))
	copy(queue, y.queue)
	inventory := make(map[string]int, len(y.inventory))
	for id, qty := range y.inventory {
		inventory[id] = qty
	}
	return Snapshot{Queue: queue, Inventory: inventory, HangarCapacity: y.hangarCapacity}
}

// Inventory returns a copy of the fleet inventory.
func (y *Yard) Inventory() map[string]int {
	y.mu.Lock()
	defer y.mu.Unlock()

	out := make(map[string]int, len(y.inventory))
	for id, qty := range y.inventory {
		out[id] = qty
	}
	return out
}

func scaledCost(bp *econ.ShipBlueprint, quantity int) econ.Amounts {
	return bp.BaseCost.Scale(float64(quantity))
}

func buildDuration(bp *econ.ShipBlueprint, quantity int) int64 {
	return int64(bp.BuildTimeSeconds) * 1000 * int64(quantity)
}

func reservedSlots(queue []Order) int {
	total := 0
	for _, order := range queue {
		if !order.Status.active() {
			continue
		}
		if bp := econ.BlueprintByID(order.BlueprintID); bp != nil {
			total += bp.HangarSlots * order.Quantity
		}
	}
	return total
}

func occupiedSlots(inventory map[string]int) int {
	total := 0
	for id, qty := range inventory {
		if bp := econ.BlueprintByID(id); bp != nil {
			total += bp.HangarSlots * qty
		}
	}
	return total
}

// StartOrder admits a production order at the given timestamp. Both gates
// have to pass — active order count and hangar slot budget — before any
// resources move; a rejected order leaves queue, inventory, and ledger
// untouched and emits exactly one warning.
func (y *Yard) StartOrder(blueprintID string, quantity int, now int64) (Order, error) {
	bp := econ.BlueprintByID(blueprintID)
	if bp == nil || quantity <= 0 {
		return Order{}, fmt.Errorf("invalid order: blueprint %q quantity %d", blueprintID, quantity)
	}

	y.mu.Lock()

	activeCount := 0
	for _, order := range y.queue {
		if order.Status.active() {
			activeCount++
		}
	}
	if activeCount >= MaxQueue {
		y.mu.Unlock()
		y.notifier.Push(
			"Shipyard busy",
			fmt.Sprintf("At most %d orders possible.", MaxQueue),
			notify.Warning,
		)
		return Order{}, fmt.Errorf("shipyard queue full")
	}

	required := bp.HangarSlots * quantity
	if occupiedSlots(y.inventory)+reservedSlots(y.queue)+required > y.hangarCapacity {
		y.mu.Unlock()
		y.notifier.Push(
			"Hangar full",
			"No slots available for further ships.",
			notify.Warning,
		)
		return Order{}, fmt.Errorf("hangar capacity exceeded")
	}

	cost := scaledCost(bp, quantity)
	if !y.ledger.Spend(cost) {
		y.mu.Unlock()
		y.notifier.Push(
			"Resources missing",
			"Not enough supplies for the production order.",
			notify.Warning,
		)
		return Order{}, fmt.Errorf("insufficient resources")
	}

	// Chain behind the last active order.
	lastEnd := now
	for _, order := range y.queue {
		if order.Status.active() && order.EndTime > lastEnd {
			lastEnd = order.EndTime
		}
	}

	order := Order{
		ID:          uuid.NewString(),
		BlueprintID: blueprintID,
		Quantity:    quantity,
		StartTime:   lastEnd,
		EndTime:     lastEnd + buildDuration(bp, quantity),
		Status:      StatusQueued,
	}
	y.queue = append(y.queue, order)
	y.mu.Unlock()

	y.notifier.Push(
		fmt.Sprintf("%s ordered", bp.Name),
		fmt.Sprintf("%sx %s scheduled.", humanize.Comma(int64(quantity)), bp.Name),
		notify.Success,
	)
	return order, nil
}

// Cancel refunds and removes a queued order, then re-chains the remaining
// queued orders from now forward. Orders already building anchor the chain
// and cannot be cancelled.
func (y *Yard) Cancel(orderID string, now int64) error {
	y.mu.Lock()

	idx := -1
	for i := range y.queue {
		if y.queue[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		y.mu.Unlock()
		return fmt.Errorf("unknown order %q", orderID)
	}
	if y.queue[idx].Status != StatusQueued {
		y.mu.Unlock()
		return fmt.Errorf("order %s not cancellable in state %s", orderID, y.queue[idx].Status)
	}

	bp := econ.BlueprintByID(y.queue[idx].BlueprintID)
	if bp == nil {
		// Without the blueprint the refund cannot be computed. Leave the
		// order in place rather than swallow the player's resources.
		blueprintID := y.queue[idx].BlueprintID
		y.mu.Unlock()
		slog.Error("order references unknown blueprint",
			"order_id", orderID, "blueprint_id", blueprintID)
		return fmt.Errorf("order %s references unknown blueprint %q", orderID, blueprintID)
	}
	refund := scaledCost(bp, y.queue[idx].Quantity)

	y.queue = append(y.queue[:idx], y.queue[idx+1:]...)
	y.rechain(now)
	y.mu.Unlock()

	y.ledger.Refund(refund)
	y.notifier.Push(
		fmt.Sprintf("%s stopped", bp.Name),
		"Resources have been refunded.",
		notify.Warning,
	)
	return nil
}

// rechain recomputes queued order timings from now forward. Building
// orders keep their window and push the cursor. Caller holds the mutex.
func (y *Yard) rechain(now int64) {
	indices := make([]int, 0, len(y.queue))
	for i := range y.queue {
		indices = append(indices, i)
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return y.queue[indices[a]].StartTime < y.queue[indices[b]].StartTime
	})

	cursor := now
	for _, i := range indices {
		order := &y.queue[i]
		switch order.Status {
		case StatusBuilding:
			if order.EndTime > cursor {
				cursor = order.EndTime
			}
		case StatusQueued:
			bp := econ.BlueprintByID(order.BlueprintID)
			if bp == nil {
				continue
			}
			order.StartTime = cursor
			order.EndTime = cursor + buildDuration(bp, order.Quantity)
			cursor = order.EndTime
		}
	}
}

// Advance moves orders through queued → building → completed at the given
// timestamp. Completions credit the inventory and notify once.
func (y *Yard) Advance(now int64) {
	type completion struct {
		blueprintID string
		quantity    int
	}
	var completions []completion

	y.mu.Lock()
	for i := range y.queue {
		order := &y.queue[i]
		if order.Status == StatusQueued && now >= order.StartTime {
			order.Status = StatusBuilding
		}
		if order.Status == StatusBuilding && now >= order.EndTime {
			order.Status = StatusCompleted
			y.inventory[order.BlueprintID] += order.Quantity
			completions = append(completions, completion{order.BlueprintID, order.Quantity})
		}
	}
	y.rechain(now)
	y.mu.Unlock()

	for _, done := range completions {
		bp := econ.BlueprintByID(done.blueprintID)
		if bp == nil {
			continue
		}
		plural := ""
		if done.quantity > 1 {
			plural = "s"
		}
		y.notifier.Push(
			fmt.Sprintf("%s completed", bp.Name),
			fmt.Sprintf("%d ship%s ready in the hangar.", done.quantity, plural),
			notify.Info,
		)
	}
}

// Queue returns a copy of all orders, including history.
func (y *Yard) Queue() []Order {
	y.mu.Lock()
	defer y.mu.Unlock()

	out := make([]Order, len(y.queue))
	copy(out, y.queue)
	return out
}
