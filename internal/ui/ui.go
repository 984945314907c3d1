package ui

// UI is what the coach session runner talks to. The interactive TUI and the
// silent fallback both satisfy it.
type UI interface {
	UpdateStatus(status string)
	ShowQuestion(photoTitle, question string, step, total int)
	Log(msg string)
}

type SilentUI struct{}

func (s SilentUI) UpdateStatus(status string)                                {}
func (s SilentUI) ShowQuestion(photoTitle, question string, step, total int) {}
func (s SilentUI) Log(msg string)                                            {}
