package ecs

// World owns the entity pool, the registered component stores, and a
// deferred destruction queue flushed at end of tick. DestroyNow exists for
// the mid-frame case where an entity must stop resolving before the tick
// completes (a ship destroyed while its effects are still scheduled).
type World struct {
	pool         *Pool
	stores       []Removable
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		stores:       make([]Removable, 0, 8),
		destroyQueue: make([]EntityID, 0, 32),
	}
}

// RegisterStore adds a component store to the destroy-cleanup set.
func (w *World) RegisterStore(s Removable) {
	w.stores = append(w.stores, s)
}

func (w *World) Create() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// DestroyNow removes the entity immediately. Handles held elsewhere go
// stale at this instant; anything resolving them later this tick sees a
// dead entity.
func (w *World) DestroyNow(id EntityID) {
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.pool.Destroy(id)
}

// FlushDestroyQueue destroys every queued entity. Called once per tick by
// the cleanup system.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.DestroyNow(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
