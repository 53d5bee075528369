package object

// Intent is a discrete player command produced by an input source.
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentMoveUp
	IntentMoveDown
	IntentStopHorizontal
	IntentStopVertical
	IntentStartAttack
	IntentStopAttack
)

var intentNames = [...]string{
	IntentNone:           "none",
	IntentMoveLeft:       "move_left",
	IntentMoveRight:      "move_right",
	IntentMoveUp:         "move_up",
	IntentMoveDown:       "move_down",
	IntentStopHorizontal: "stop_horizontal",
	IntentStopVertical:   "stop_vertical",
	IntentStartAttack:    "start_attack",
	IntentStopAttack:     "stop_attack",
}

func (i Intent) String() string {
	if i >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// Player is one of the two player ships. Hit points are pooled at session level.
type Player struct {
	body
	DX, DY  float64 // Velocity in pixels per frame
	Speed   float64 // Movement speed applied by move intents
	Weapons WeaponState
}

// NewPlayer creates a player ship with its top-left corner at (x,y).
func NewPlayer(cache *SpriteCache, id SpriteID, x, y float64, w, h int, speed float64) *Player {
	return &Player{
		body:    newBody(cache, id, x, y, w, h),
		Speed:   speed,
		Weapons: NewWeaponState(),
	}
}

// Apply executes an intent.
func (p *Player) Apply(intent Intent) {
	switch intent {
	case IntentMoveLeft:
		p.DX = -p.Speed
	case IntentMoveRight:
		p.DX = p.Speed
	case IntentMoveUp:
		p.DY = -p.Speed
	case IntentMoveDown:
		p.DY = p.Speed
	case IntentStopHorizontal:
		p.DX = 0
	case IntentStopVertical:
		p.DY = 0
	case IntentStartAttack:
		p.Weapons.StartAttack()
	case IntentStopAttack:
		p.Weapons.StopAttack()
	}
}

// Update moves the ship. A step that would leave the field on an axis is
// undone on that axis only.
func (p *Player) Update(ctx UpdateContext) bool {
	p.X += p.DX
	p.Y += p.DY

	if p.X < 0 || p.X+float64(p.W) > float64(ctx.Screen.Width) {
		p.X -= p.DX
	}
	if p.Y < 0 || p.Y+float64(p.H) > float64(ctx.Screen.Height) {
		p.Y -= p.DY
	}
	return false
}

// MuzzlePositions returns the horizontal centres of the bullets a volley
// would fire from the ship's current position.
func (p *Player) MuzzlePositions() []float64 {
	offsets := p.Weapons.MuzzleOffsets(float64(p.W))
	for i := range offsets {
		offsets[i] += p.X
	}
	return offsets
}

// Fire returns this frame's volley, or nil when the weapon is not ready.
// Bullets are centred on the muzzle positions and start weaponRise pixels
// above the ship's centre.
func (p *Player) Fire(cache *SpriteCache, bw, bh int, bulletSpeed, weaponRise float64) []*PlayerWeapon {
	if !p.Weapons.CanAttack() {
		return nil
	}
	top := p.Center().Y - weaponRise
	muzzles := p.MuzzlePositions()
	volley := make([]*PlayerWeapon, 0, len(muzzles))
	for _, mx := range muzzles {
		left := float64(int(mx - float64(bw)/2))
		volley = append(volley, NewPlayerWeapon(cache, left, top, bw, bh, bulletSpeed, p.Weapons.PowerLevel))
	}
	return volley
}

// Ensure Player satisfies Masked.
var _ Masked = (*Player)(nil)
