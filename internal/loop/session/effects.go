package session

// Effects receives fire-and-forget notifications from combat resolution.
type Effects interface {
	// Explosion reports a blast covering the box (x,y,w,h) in world pixels.
	Explosion(x, y, w, h int)
	// ItemPickup reports that a player collected an item.
	ItemPickup()
}

// ShotListener is implemented by sinks that also want to hear player volleys.
type ShotListener interface {
	Shot(player int)
}

// Nop discards every effect.
type Nop struct{}

func (Nop) Explosion(int, int, int, int) {}
func (Nop) ItemPickup()                  {}

// safeEffects shields the kernel from sink failures. A panicking sink call is
// dropped and the frame carries on.
type safeEffects struct {
	sink Effects
}

func newSafeEffects(sink Effects) safeEffects {
	if sink == nil {
		sink = Nop{}
	}
	return safeEffects{sink: sink}
}

func (s safeEffects) explosion(x, y, w, h int) {
	defer func() { _ = recover() }()
	s.sink.Explosion(x, y, w, h)
}

func (s safeEffects) itemPickup() {
	defer func() { _ = recover() }()
	s.sink.ItemPickup()
}

func (s safeEffects) shot(player int) {
	l, ok := s.sink.(ShotListener)
	if !ok {
		return
	}
	defer func() { _ = recover() }()
	l.Shot(player)
}
