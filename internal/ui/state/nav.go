package state

// Nav is a semantic navigation action decoded from a key.
type Nav int

const (
	NavUp Nav = iota
	NavDown
	NavLeft
	NavRight
	NavInteract
	NavCancel
)

func (n Nav) String() string {
	switch n {
	case NavUp:
		return "up"
	case NavDown:
		return "down"
	case NavLeft:
		return "left"
	case NavRight:
		return "right"
	case NavInteract:
		return "interact"
	case NavCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
