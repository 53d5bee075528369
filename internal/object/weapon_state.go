package object

// Attack timing and weapon level caps.
const (
	AttackCooldownBase    = 26
	AttackSpeedMultiplier = 3
	MaxWeaponSpeedLevel   = 5
	MaxWeaponPowerLevel   = 5
	MaxWeaponNumberLevel  = 4
	initialWeaponLevel    = 1
)

// WeaponState is a player's attack state machine and weapon levels.
//
// A key press arms the weapon. Firing is additionally gated by a
// fire-enabled flag that is only granted at arm time when the cooldown
// window started by the previous arm has elapsed, so tapping the key cannot
// beat the fire rate.
type WeaponState struct {
	SpeedLevel  int
	PowerLevel  int
	NumberLevel int

	armed       bool
	fireEnabled bool
	sinceStart  int // Frames since the last StartAttack
	cooldown    int // Frames since fire was last enabled
}

// NewWeaponState returns level-1 weapons with the initial cooldown satisfied.
func NewWeaponState() WeaponState {
	return WeaponState{
		SpeedLevel:  initialWeaponLevel,
		PowerLevel:  initialWeaponLevel,
		NumberLevel: initialWeaponLevel,
		cooldown:    AttackCooldownBase,
	}
}

// AttackDelay returns the frames between shots for the current speed level.
func (w *WeaponState) AttackDelay() int {
	return AttackDelayFor(w.SpeedLevel)
}

// AttackDelayFor returns the frames between shots for a speed level.
func AttackDelayFor(speedLevel int) int {
	return AttackCooldownBase - speedLevel*AttackSpeedMultiplier
}

// CanAttack reports whether a volley should be fired this frame.
func (w *WeaponState) CanAttack() bool {
	return w.armed && w.fireEnabled && w.sinceStart%w.AttackDelay() == 0
}

// StartAttack arms the weapon.
func (w *WeaponState) StartAttack() {
	w.armed = true
	w.sinceStart = 0
	if w.cooldown >= w.AttackDelay() {
		w.fireEnabled = true
		w.cooldown = 0
	}
}

// StopAttack disarms the weapon.
func (w *WeaponState) StopAttack() {
	w.armed = false
	w.fireEnabled = false
}

// Armed reports whether the attack key is held.
func (w *WeaponState) Armed() bool { return w.armed }

// UpdateCounters advances the frame counters. Runs every frame, armed or not.
func (w *WeaponState) UpdateCounters() {
	w.sinceStart++
	w.cooldown++
}

// UpgradeSpeed raises the speed level by one, up to its cap.
func (w *WeaponState) UpgradeSpeed() {
	if w.SpeedLevel < MaxWeaponSpeedLevel {
		w.SpeedLevel++
	}
}

// UpgradePower raises the power level by one, up to its cap.
func (w *WeaponState) UpgradePower() {
	if w.PowerLevel < MaxWeaponPowerLevel {
		w.PowerLevel++
	}
}

// UpgradeNumber raises the number level by one, up to its cap.
func (w *WeaponState) UpgradeNumber() {
	if w.NumberLevel < MaxWeaponNumberLevel {
		w.NumberLevel++
	}
}

// ClampLevels forces every level back under its cap.
func (w *WeaponState) ClampLevels() {
	w.SpeedLevel = min(w.SpeedLevel, MaxWeaponSpeedLevel)
	w.PowerLevel = min(w.PowerLevel, MaxWeaponPowerLevel)
	w.NumberLevel = min(w.NumberLevel, MaxWeaponNumberLevel)
}

// MuzzleOffsets returns the horizontal bullet centres, relative to the
// player's left edge, for a player of the given width at the current number level.
func (w *WeaponState) MuzzleOffsets(width float64) []float64 {
	switch w.NumberLevel {
	case 1:
		return []float64{width / 2}
	case 2:
		return []float64{width / 4, width / 4 * 3}
	case 3:
		offsets := make([]float64, 4)
		for i := range offsets {
			offsets[i] = width / 3 * float64(i)
		}
		return offsets
	default:
		offsets := make([]float64, 5)
		for i := range offsets {
			offsets[i] = width / 4 * float64(i)
		}
		return offsets
	}
}
