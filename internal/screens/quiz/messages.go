package quiz

// cardDrawnMsg is sent once the next card has been drawn.
type cardDrawnMsg struct {
	Err error
}

// persistedMsg confirms the fire-and-forget state save finished. The
// next draw never waits for it.
type persistedMsg struct {
	Err error
}
