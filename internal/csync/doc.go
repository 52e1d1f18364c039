// Package csync provides small mutex-guarded containers shared between the
// UI goroutine and the render workers.
//
// Every method is a single critical section, so a producer appending a job
// and a worker shifting one never observe a half-updated container:
//
//	lane := csync.NewSlice[*Job]()
//	old := lane.Replace(job) // swap the whole lane in one step
//	next, ok := lane.Shift() // pop the oldest element
//
// Map is used for registries that are written at startup and read from
// worker goroutines.
package csync
