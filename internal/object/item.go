package object

// ItemKind is the effect of a collectible item.
type ItemKind int

const (
	ItemHeal ItemKind = iota
	ItemWeaponPower
	ItemWeaponSpeed
	ItemWeaponNumber
)

// ItemKinds lists every kind in draw order.
var ItemKinds = [...]ItemKind{ItemHeal, ItemWeaponPower, ItemWeaponSpeed, ItemWeaponNumber}

func (k ItemKind) String() string {
	switch k {
	case ItemHeal:
		return "heal"
	case ItemWeaponPower:
		return "weapon_power"
	case ItemWeaponSpeed:
		return "weapon_speed"
	case ItemWeaponNumber:
		return "weapon_number"
	default:
		return "unknown"
	}
}

// Sprite returns the artwork for the kind.
func (k ItemKind) Sprite() SpriteID {
	switch k {
	case ItemWeaponPower:
		return SpriteItemPower
	case ItemWeaponSpeed:
		return SpriteItemSpeed
	case ItemWeaponNumber:
		return SpriteItemNumber
	default:
		return SpriteItemHeal
	}
}

// Item falls slowly from the top of the field until collected.
type Item struct {
	body
	Kind  ItemKind
	Speed float64
}

// NewItem creates an item with its top-left corner at (x,y).
func NewItem(cache *SpriteCache, kind ItemKind, x, y float64, w, h int, speed float64) *Item {
	return &Item{
		body:  newBody(cache, kind.Sprite(), x, y, w, h),
		Kind:  kind,
		Speed: speed,
	}
}

// Update moves the item down and removes it below the field.
func (i *Item) Update(ctx UpdateContext) bool {
	i.Y += i.Speed
	return i.Y > float64(ctx.Screen.Height)
}

var _ Entity = (*Item)(nil)
