package compstate

import (
	"github.com/pkg/errors"

	"github.com/rovision/compstate-go/params"
)

// ObjectType classifies the tracked object once it has been acquired.
type ObjectType int

const (
	// ObjectUnacquired means no object classification has happened yet
	ObjectUnacquired ObjectType = iota
	// ObjectUpright is an object standing on its base
	ObjectUpright
	// ObjectOnSide is an object lying on its side
	ObjectOnSide
)

// CompetitionState holds the last known detection state for a single
// competition attempt: robot, object and target bounding boxes, the planned
// traversal path and the procedures executing it. All access happens from the
// application's main thread.
type CompetitionState struct {
	params     *params.Manager
	controller MotionController

	boxRobot  Rectangle
	boxObject Rectangle
	boxTarget Rectangle

	robotBoxFresh  bool
	objectBoxFresh bool

	trackingRobot  bool
	trackingObject bool
	acquireWalls   bool
	objectType     ObjectType

	walls *WallSet

	path Path

	robotLocLabel  StatusLabel
	objectLocLabel StatusLabel

	smoothing      bool
	robotSmoother  *BoxSmoother
	objectSmoother *BoxSmoother

	procedure       Procedure
	objectProcedure Procedure
}

// Option configures a CompetitionState at construction.
type Option func(*CompetitionState)

// WithSmoothing enables Kalman smoothing of acquired robot and object boxes.
func WithSmoothing() Option {
	return func(s *CompetitionState) {
		s.smoothing = true
	}
}

// NewCompetitionState creates a CompetitionState wired to the given motion
// controller and parameter manager. A nil sink means headless mode: location
// labels are never created or updated.
func NewCompetitionState(controller MotionController, pm *params.Manager, sink StatusSink, opts ...Option) *CompetitionState {
	s := &CompetitionState{
		params:     pm,
		controller: controller,
		objectType: ObjectUnacquired,
	}
	if sink != nil {
		s.robotLocLabel = sink.AddLabel(centerText(Rectangle{}, "Robot"))
		s.objectLocLabel = sink.AddLabel(centerText(Rectangle{}, "Object"))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AcquireRobotBox stores the latest robot detection, updates the location
// label and marks the box fresh.
func (s *CompetitionState) AcquireRobotBox(robotBox Rectangle) {
	if s.robotLocLabel != nil {
		s.robotLocLabel.SetText(centerText(robotBox, "Robot"))
	}
	s.boxRobot = robotBox
	s.robotBoxFresh = true
	if s.smoothing {
		if s.robotSmoother == nil {
			s.robotSmoother = NewBoxSmoother(robotBox)
		} else if err := s.robotSmoother.Update(robotBox); err != nil {
			Logf("robot box smoother: %v", err)
		}
	}
}

// AcquireObjectBox stores the latest object detection, updates the location
// label and marks the box fresh.
func (s *CompetitionState) AcquireObjectBox(objectBox Rectangle) {
	if s.objectLocLabel != nil {
		s.objectLocLabel.SetText(centerText(objectBox, "Object"))
	}
	s.boxObject = objectBox
	s.objectBoxFresh = true
	if s.smoothing {
		if s.objectSmoother == nil {
			s.objectSmoother = NewBoxSmoother(objectBox)
		} else if err := s.objectSmoother.Update(objectBox); err != nil {
			Logf("object box smoother: %v", err)
		}
	}
}

// AcquireTargetBox stores the latest target detection. Target boxes carry no
// freshness flag and no label.
func (s *CompetitionState) AcquireTargetBox(targetBox Rectangle) {
	s.boxTarget = targetBox
}

// AcquireWalls stores a reference to the externally owned wall collection.
func (s *CompetitionState) AcquireWalls(walls *WallSet) {
	s.walls = walls
}

// Walls returns the shared wall collection reference, which may be nil.
func (s *CompetitionState) Walls() *WallSet {
	return s.walls
}

// IsTrackingRobot reports whether robot tracking is active.
func (s *CompetitionState) IsTrackingRobot() bool {
	return s.trackingRobot
}

// IsTrackingObject reports whether object tracking is active.
func (s *CompetitionState) IsTrackingObject() bool {
	return s.trackingObject
}

// ObjectType returns the current object classification.
func (s *CompetitionState) ObjectType() ObjectType {
	return s.objectType
}

// SetTrackingRobot sets the robot tracking flag.
func (s *CompetitionState) SetTrackingRobot(trackingRobot bool) {
	s.trackingRobot = trackingRobot
}

// SetTrackingObject sets the object tracking flag.
func (s *CompetitionState) SetTrackingObject(trackingObject bool) {
	s.trackingObject = trackingObject
}

// SetAcquireWalls sets the wall acquisition flag.
func (s *CompetitionState) SetAcquireWalls(acquireWalls bool) {
	s.acquireWalls = acquireWalls
}

// IsAcquiringWalls reports the wall acquisition flag.
func (s *CompetitionState) IsAcquiringWalls() bool {
	return s.acquireWalls
}

// SetObjectType sets the object classification.
func (s *CompetitionState) SetObjectType(objectType ObjectType) {
	s.objectType = objectType
}

// RobotBox returns a pointer to the stored robot box. Passing consume clears
// the freshness flag as a side effect of the read.
func (s *CompetitionState) RobotBox(consume bool) *Rectangle {
	s.robotBoxFresh = s.robotBoxFresh && !consume
	return &s.boxRobot
}

// ObjectBox returns a pointer to the stored object box. Passing consume
// clears the freshness flag as a side effect of the read.
func (s *CompetitionState) ObjectBox(consume bool) *Rectangle {
	s.objectBoxFresh = s.objectBoxFresh && !consume
	return &s.boxObject
}

// TargetBox returns a pointer to the stored target box.
func (s *CompetitionState) TargetBox() *Rectangle {
	return &s.boxTarget
}

// IsRobotBoxFresh reports whether a robot box has been acquired and not yet
// consumed.
func (s *CompetitionState) IsRobotBoxFresh() bool {
	return s.robotBoxFresh
}

// IsObjectBoxFresh reports whether an object box has been acquired and not
// yet consumed.
func (s *CompetitionState) IsObjectBoxFresh() bool {
	return s.objectBoxFresh
}

// IsRobotBoxValid scores the stored robot box against the calibrated robot
// area and reports whether it is plausible.
func (s *CompetitionState) IsRobotBoxValid() bool {
	if s.params == nil {
		return false
	}
	return AcquisitionR(s.boxRobot, s.params.GetRobotCalibArea()) < s.params.GetAreaAcqRSigma()
}

// IsObjectBoxValid scores the stored object box against the calibrated object
// area and reports whether it is plausible.
func (s *CompetitionState) IsObjectBoxValid() bool {
	if s.params == nil {
		return false
	}
	return AcquisitionR(s.boxObject, s.params.GetObjectCalibArea()) < s.params.GetAreaAcqRSigma()
}

// SmoothedRobotBox returns the Kalman-smoothed robot box, falling back to the
// raw box when smoothing is disabled or not yet primed.
func (s *CompetitionState) SmoothedRobotBox() Rectangle {
	if s.robotSmoother == nil {
		return s.boxRobot
	}
	return s.robotSmoother.Box()
}

// SmoothedObjectBox returns the Kalman-smoothed object box, falling back to
// the raw box when smoothing is disabled or not yet primed.
func (s *CompetitionState) SmoothedObjectBox() Rectangle {
	if s.objectSmoother == nil {
		return s.boxObject
	}
	return s.objectSmoother.Box()
}

// ClearPath empties the planned path.
func (s *CompetitionState) ClearPath() {
	s.path = s.path[:0]
}

// AppendPath appends a waypoint to the planned path.
func (s *CompetitionState) AppendPath(x, y float64) {
	Logf("path: ( %v , %v )", x, y)
	s.path = append(s.path, Point{X: x, Y: y})
}

// GetPath returns the planned path. Be careful: this is not a copy of the
// path, but a reference to it.
func (s *CompetitionState) GetPath() Path {
	return s.path
}

// BeginTraversal starts a new traversal procedure bound to the current path.
// A traversal procedure still running is stopped before being replaced.
func (s *CompetitionState) BeginTraversal() error {
	if s.procedure != nil && s.procedure.Running() {
		if err := s.procedure.Stop(); err != nil {
			return errors.Wrap(err, "Can't stop previous traversal procedure")
		}
	}
	s.procedure = NewTraversalProcedure(s.controller, s.path)
	return errors.Wrap(s.procedure.Start(), "Can't start traversal procedure")
}

// HaltTraversal stops the active traversal procedure. Calling it with no
// procedure ever started is a contract violation reported as an error.
func (s *CompetitionState) HaltTraversal() error {
	if s.procedure == nil {
		return errors.New("no traversal procedure to halt")
	}
	return errors.Wrap(s.procedure.Stop(), "Can't stop traversal procedure")
}

// BeginObjectMove starts a new object move procedure bound to the current
// path and the object's pickup point. An object move procedure still running
// is stopped before being replaced.
func (s *CompetitionState) BeginObjectMove() error {
	if s.objectProcedure != nil && s.objectProcedure.Running() {
		if err := s.objectProcedure.Stop(); err != nil {
			return errors.Wrap(err, "Can't stop previous object move procedure")
		}
	}
	s.objectProcedure = NewObjectMoveProcedure(s.controller, s.path, s.boxObject.Center())
	return errors.Wrap(s.objectProcedure.Start(), "Can't start object move procedure")
}

// HaltObjectMove stops the active object move procedure. Calling it with no
// procedure ever started is a contract violation reported as an error.
func (s *CompetitionState) HaltObjectMove() error {
	if s.objectProcedure == nil {
		return errors.New("no object move procedure to halt")
	}
	return errors.Wrap(s.objectProcedure.Stop(), "Can't stop object move procedure")
}

// ActiveTraversal returns the current traversal procedure, which may be nil.
func (s *CompetitionState) ActiveTraversal() Procedure {
	return s.procedure
}

// ActiveObjectMove returns the current object move procedure, which may be
// nil.
func (s *CompetitionState) ActiveObjectMove() Procedure {
	return s.objectProcedure
}

// StepProcedures advances the running procedures by one waypoint each. Meant
// to be called once per frame from the application loop.
func (s *CompetitionState) StepProcedures() error {
	if s.procedure != nil && s.procedure.Running() {
		if _, err := s.procedure.Step(); err != nil {
			return errors.Wrap(err, "Can't step traversal procedure")
		}
	}
	if s.objectProcedure != nil && s.objectProcedure.Running() {
		if _, err := s.objectProcedure.Step(); err != nil {
			return errors.Wrap(err, "Can't step object move procedure")
		}
	}
	return nil
}
