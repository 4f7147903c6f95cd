package compstate

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// BoxSmoother filters successive detections of a single tracked box through
// an 8-D Kalman filter over [cx, cy, w, h] and their velocities, absorbing
// jitter from the detector. It also keeps a bounded history of smoothed
// center positions.
type BoxSmoother struct {
	current     Rectangle
	track       []Point
	maxTrackLen int
	filter      *kalman_filter.KalmanBBox
}

// NewBoxSmootherWithTime creates a BoxSmoother seeded with the first detected
// box and the given time step between frames.
func NewBoxSmootherWithTime(initial Rectangle, dt float64) *BoxSmoother {
	center := initial.Center()

	// Kalman filter props
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(center.X, center.Y, initial.Width, initial.Height),
	)

	smoother := BoxSmoother{
		current:     initial,
		track:       make([]Point, 0, 150),
		maxTrackLen: 150,
		filter:      kf,
	}
	smoother.track = append(smoother.track, center)
	return &smoother
}

// NewBoxSmoother creates a BoxSmoother with the default time step of 1.0.
func NewBoxSmoother(initial Rectangle) *BoxSmoother {
	return NewBoxSmootherWithTime(initial, 1.0)
}

// Update feeds a new raw detection through the filter and stores the smoothed
// box.
func (s *BoxSmoother) Update(measured Rectangle) error {
	center := measured.Center()

	s.filter.Predict()
	err := s.filter.Update(center.X, center.Y, measured.Width, measured.Height)
	if err != nil {
		return errors.Wrap(err, "Can't update box filter")
	}

	cx, cy, w, h := s.filter.GetState()
	s.current = Rectangle{
		X:      cx - w/2.0,
		Y:      cy - h/2.0,
		Width:  w,
		Height: h,
	}

	s.track = append(s.track, Point{X: cx, Y: cy})
	if len(s.track) > s.maxTrackLen {
		s.track = s.track[1:]
	}
	return nil
}

// Box returns the latest smoothed bounding box.
func (s *BoxSmoother) Box() Rectangle {
	return s.current
}

// Track returns the smoothed center history. Be careful: this is not a copy
// of the track, but a reference to it.
func (s *BoxSmoother) Track() []Point {
	return s.track
}

// SetMaxTrackLen sets the smoother's max track length.
func (s *BoxSmoother) SetMaxTrackLen(newMaxTrackLen int) {
	s.maxTrackLen = newMaxTrackLen
}

// Velocity returns current velocity estimates (vx, vy, vw, vh) from the
// Kalman filter.
func (s *BoxSmoother) Velocity() (float64, float64, float64, float64) {
	return s.filter.GetVelocity()
}
