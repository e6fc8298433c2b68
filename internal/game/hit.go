package game

// PointerEvent is one pointer-down transition, already debounced by the input adapter
// and already hit-tested by the geometry adapter.
type PointerEvent struct {
	ScreenX, ScreenY float64
	Candidate        EnemyID // Enemy the external pick test struck; zero when it struck nothing
}

// HitResolver applies the external pick result to the live enemy set.
// It does no geometry of its own: the candidate is authoritative.
type HitResolver struct{}

// Resolve returns the single enemy struck by pointer, if it is still alive.
func (HitResolver) Resolve(pointer *PointerEvent, enemies map[EnemyID]*Enemy) (EnemyID, bool) {
	if pointer == nil || pointer.Candidate == 0 {
		return 0, false
	}
	if _, ok := enemies[pointer.Candidate]; !ok {
		return 0, false
	}
	return pointer.Candidate, true
}
