package ecs

// EntityID is a weak handle to a simulation entity: a 32-bit slot index in
// the low bits and a 32-bit generation in the high bits. Destroying an
// entity bumps its slot's generation, so a handle captured before the
// destruction can never resolve again, even if the slot is reused.
type EntityID uint64

func makeEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Pool allocates entity slots. Freed slots are recycled through a free
// list; the generation counter is what distinguishes a recycled slot from
// the entity that used to live there.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 512),
		freeList:    make([]uint32, 0, 128),
	}
}

func (p *Pool) Create() EntityID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return makeEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	// Generations start at 1 so the zero EntityID never refers to a live
	// entity.
	p.generations = append(p.generations, 1)
	return makeEntityID(idx, 1)
}

// Alive reports whether id still refers to the entity it was created for.
// A stale handle (slot reused or freed) is simply not alive; resolving one
// is an expected, frequent condition, not an error.
func (p *Pool) Alive(id EntityID) bool {
	idx := id.Index()
	return idx < p.nextIndex && p.generations[idx] == id.Generation()
}

func (p *Pool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex || p.generations[idx] != id.Generation() {
		return // stale handle, already gone
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
