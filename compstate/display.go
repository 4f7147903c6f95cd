package compstate

import "fmt"

// StatusLabel is a single line in the application's status display.
type StatusLabel interface {
	SetText(text string)
}

// StatusSink creates status display labels. Implemented by the GUI's status
// box; CompetitionState never owns the widgets it writes to.
type StatusSink interface {
	AddLabel(text string) StatusLabel
}

// centerText formats the center of a bounding box for the status display.
func centerText(rect Rectangle, label string) string {
	center := rect.Center()
	return fmt.Sprintf("%6s: (%6.1f , %6.1f )", label, center.X, center.Y)
}
