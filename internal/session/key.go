package session

// Kind discriminates input events fed to a Session.
type Kind int

// Input event kinds.
const (
	KindRune Kind = iota
	KindBackspace
	KindEnter
	KindCancel
)

// Key is one input event: a printable rune or a control key.
type Key struct {
	Kind Kind
	Rune rune
}

// Control keys.
var (
	Backspace = Key{Kind: KindBackspace}
	Enter     = Key{Kind: KindEnter}
	Cancel    = Key{Kind: KindCancel}
)

// Rune wraps a printable character as a Key.
func Rune(r rune) Key {
	return Key{Kind: KindRune, Rune: r}
}
