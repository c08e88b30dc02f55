// Context, Loader, and memory.Heap are never passed across a `go`
// boundary in this repository, and no package spawns a goroutine that
// touches runtime state (spec.md §5's single-threaded execution model).
// This is a design constraint, not an accident of the current call
// graph: a future concurrent scheduler would need its own per-goroutine
// Context rather than sharing one across threads.
package runtime
