package input

import "github.com/tomz197/strikers/internal/object"

// axis is a resolved direction on one axis: -1, 0 or +1.
type axis int

func resolve(neg, pos bool, prev axis) axis {
	switch {
	case neg && pos:
		return prev // Both held: keep going the way we were
	case neg:
		return -1
	case pos:
		return 1
	default:
		return 0
	}
}

// Translator turns held-key state into the edge-triggered intents a player
// understands: a move when a direction starts or flips, a stop when it ends,
// and attack start/stop on the attack key's edges.
type Translator struct {
	h, v   [Players]axis
	attack [Players]bool
}

// Intents returns this frame's intents for each player.
func (t *Translator) Intents(in Input) [Players][]object.Intent {
	var out [Players][]object.Intent
	for i, k := range in.Players {
		var intents []object.Intent

		if h := resolve(k.Left, k.Right, t.h[i]); h != t.h[i] {
			switch h {
			case -1:
				intents = append(intents, object.IntentMoveLeft)
			case 1:
				intents = append(intents, object.IntentMoveRight)
			default:
				intents = append(intents, object.IntentStopHorizontal)
			}
			t.h[i] = h
		}

		if v := resolve(k.Up, k.Down, t.v[i]); v != t.v[i] {
			switch v {
			case -1:
				intents = append(intents, object.IntentMoveUp)
			case 1:
				intents = append(intents, object.IntentMoveDown)
			default:
				intents = append(intents, object.IntentStopVertical)
			}
			t.v[i] = v
		}

		if k.Attack != t.attack[i] {
			if k.Attack {
				intents = append(intents, object.IntentStartAttack)
			} else {
				intents = append(intents, object.IntentStopAttack)
			}
			t.attack[i] = k.Attack
		}

		out[i] = intents
	}
	return out
}

// Reset forgets the previous frame, as at the start of a new session.
func (t *Translator) Reset() {
	*t = Translator{}
}
