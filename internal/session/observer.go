package session

// Observer receives session events as they happen. Implementations must
// not call back into the Session.
type Observer interface {
	Keystroke(key Key, correct bool, position int)
	WordMistyped(word string)
	SessionEnded(completed bool, position int)
}

// NopObserver ignores all events.
type NopObserver struct{}

// Keystroke implements Observer.
func (NopObserver) Keystroke(Key, bool, int) {}

// WordMistyped implements Observer.
func (NopObserver) WordMistyped(string) {}

// SessionEnded implements Observer.
func (NopObserver) SessionEnded(bool, int) {}
