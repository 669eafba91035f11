// Build queue scheduling: capacity checks, FIFO slot timing, and the
// per-tick partition into completed and pending work.
package econ

// QueueItem is one pending level-up in the build queue. Timestamps are
// Unix milliseconds; entries chain so that item i+1 never starts before
// item i ends.
type QueueItem struct {
	EntityID  string `json:"entityId"`
	Level     int    `json:"level"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

// HasCapacity reports whether another order fits into the queue.
func HasCapacity(queue []QueueItem, maxLength int) bool {
	return len(queue) < maxLength
}

// SlotTiming computes start and end timestamps for a newly enqueued item.
// A new order starts at the later of now and the end of the last queued
// entry, keeping the queue strictly FIFO even when earlier entries are
// already overdue and waiting for the tick to collect them.
func SlotTiming(queue []QueueItem, durationSeconds int, now int64) (startTime, endTime int64) {
	startTime = now
	if len(queue) > 0 && queue[len(queue)-1].EndTime > now {
		startTime = queue[len(queue)-1].EndTime
	}
	endTime = startTime + int64(durationSeconds)*1000
	return startTime, endTime
}

// Partition splits the queue into entries finished at the given timestamp
// and the pending remainder. Relative order is preserved in both halves.
func Partition(queue []QueueItem, timestamp int64) (completed, pending []QueueItem) {
	for _, item := range queue {
		if timestamp >= item.EndTime {
			completed = append(completed, item)
		} else {
			pending = append(pending, item)
		}
	}
	return completed, pending
}
