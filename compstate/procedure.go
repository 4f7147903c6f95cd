package compstate

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MotionController commands the physical robot. Implemented elsewhere in the
// application and injected into CompetitionState.
type MotionController interface {
	MoveTo(target Point) error
	Halt() error
}

// Procedure is a path-execution routine bound to a motion controller. The
// application's frame loop drives it: Start, then Step until done or Stop.
type Procedure interface {
	// GetID returns the identifier of this procedure run
	GetID() uuid.UUID
	Start() error
	// Step advances the procedure by one waypoint and reports whether it
	// has finished
	Step() (bool, error)
	Stop() error
	Running() bool
}

// TraversalProcedure walks the robot through the path waypoints in order and
// halts the controller when the last one is reached.
type TraversalProcedure struct {
	id         uuid.UUID
	controller MotionController
	waypoints  Path
	next       int
	running    bool
}

// NewTraversalProcedure creates a TraversalProcedure bound to a snapshot of
// the given path.
func NewTraversalProcedure(controller MotionController, path Path) *TraversalProcedure {
	return &TraversalProcedure{
		id:         uuid.New(),
		controller: controller,
		waypoints:  append(Path(nil), path...),
	}
}

// GetID returns the identifier of this procedure run.
func (p *TraversalProcedure) GetID() uuid.UUID {
	return p.id
}

// Start marks the procedure as running. Waypoints are issued by Step.
func (p *TraversalProcedure) Start() error {
	if p.controller == nil {
		return errors.New("traversal procedure has no motion controller")
	}
	p.next = 0
	p.running = true
	Logf("traversal %s: start, %d waypoints", p.id, len(p.waypoints))
	return nil
}

// Step commands the controller to the next waypoint. Once every waypoint has
// been issued, the controller is halted and Step reports done.
func (p *TraversalProcedure) Step() (bool, error) {
	if !p.running {
		return true, errors.New("traversal procedure is not running")
	}
	if p.next >= len(p.waypoints) {
		p.running = false
		Logf("traversal %s: done", p.id)
		if err := p.controller.Halt(); err != nil {
			return true, errors.Wrap(err, "Can't halt controller at end of path")
		}
		return true, nil
	}
	waypoint := p.waypoints[p.next]
	if err := p.controller.MoveTo(waypoint); err != nil {
		return false, errors.Wrapf(err, "Can't command waypoint %d", p.next)
	}
	p.next++
	return false, nil
}

// Stop halts the controller and ends the procedure. Stopping an already
// stopped procedure is a no-op.
func (p *TraversalProcedure) Stop() error {
	if !p.running {
		return nil
	}
	p.running = false
	Logf("traversal %s: stop at waypoint %d", p.id, p.next)
	return errors.Wrap(p.controller.Halt(), "Can't halt controller")
}

// Running reports whether the procedure has started and not yet finished.
func (p *TraversalProcedure) Running() bool {
	return p.running
}

// ObjectMoveProcedure drives the robot to the object's pickup point first,
// then follows the path, halting the controller at the release point.
type ObjectMoveProcedure struct {
	id         uuid.UUID
	controller MotionController
	waypoints  Path
	next       int
	running    bool
}

// NewObjectMoveProcedure creates an ObjectMoveProcedure that approaches the
// pickup point before following a snapshot of the given path.
func NewObjectMoveProcedure(controller MotionController, path Path, pickup Point) *ObjectMoveProcedure {
	waypoints := make(Path, 0, len(path)+1)
	waypoints = append(waypoints, pickup)
	waypoints = append(waypoints, path...)
	return &ObjectMoveProcedure{
		id:         uuid.New(),
		controller: controller,
		waypoints:  waypoints,
	}
}

// GetID returns the identifier of this procedure run.
func (p *ObjectMoveProcedure) GetID() uuid.UUID {
	return p.id
}

// Start marks the procedure as running.
func (p *ObjectMoveProcedure) Start() error {
	if p.controller == nil {
		return errors.New("object move procedure has no motion controller")
	}
	p.next = 0
	p.running = true
	Logf("object move %s: start, %d waypoints", p.id, len(p.waypoints))
	return nil
}

// Step commands the controller to the next waypoint, pickup point first.
func (p *ObjectMoveProcedure) Step() (bool, error) {
	if !p.running {
		return true, errors.New("object move procedure is not running")
	}
	if p.next >= len(p.waypoints) {
		p.running = false
		Logf("object move %s: done", p.id)
		if err := p.controller.Halt(); err != nil {
			return true, errors.Wrap(err, "Can't halt controller at release point")
		}
		return true, nil
	}
	waypoint := p.waypoints[p.next]
	if err := p.controller.MoveTo(waypoint); err != nil {
		return false, errors.Wrapf(err, "Can't command waypoint %d", p.next)
	}
	p.next++
	return false, nil
}

// Stop halts the controller and ends the procedure.
func (p *ObjectMoveProcedure) Stop() error {
	if !p.running {
		return nil
	}
	p.running = false
	Logf("object move %s: stop at waypoint %d", p.id, p.next)
	return errors.Wrap(p.controller.Halt(), "Can't halt controller")
}

// Running reports whether the procedure has started and not yet finished.
func (p *ObjectMoveProcedure) Running() bool {
	return p.running
}
