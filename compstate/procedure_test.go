package compstate

import (
	"testing"

	"github.com/pkg/errors"
)

type recordingController struct {
	moves   []Point
	halts   int
	moveErr error
	haltErr error
}

func (c *recordingController) MoveTo(target Point) error {
	if c.moveErr != nil {
		return c.moveErr
	}
	c.moves = append(c.moves, target)
	return nil
}

func (c *recordingController) Halt() error {
	if c.haltErr != nil {
		return c.haltErr
	}
	c.halts++
	return nil
}

func TestTraversalProcedureSteps(t *testing.T) {
	controller := &recordingController{}
	path := Path{{X: 1, Y: 2}, {X: 3, Y: 4}}
	proc := NewTraversalProcedure(controller, path)

	if err := proc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !proc.Running() {
		t.Error("Procedure should be running after Start")
	}

	for i := range path {
		done, err := proc.Step()
		if err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
		if done {
			t.Fatalf("Step %d reported done too early", i)
		}
	}

	done, err := proc.Step()
	if err != nil {
		t.Fatalf("Final step failed: %v", err)
	}
	if !done {
		t.Error("Final step should report done")
	}
	if proc.Running() {
		t.Error("Procedure should not be running after completion")
	}
	if controller.halts != 1 {
		t.Errorf("Expected 1 halt at end of path, got %d", controller.halts)
	}
	if len(controller.moves) != 2 || controller.moves[0] != path[0] || controller.moves[1] != path[1] {
		t.Errorf("Unexpected waypoint commands: %v", controller.moves)
	}
}

func TestTraversalProcedureEmptyPath(t *testing.T) {
	controller := &recordingController{}
	proc := NewTraversalProcedure(controller, nil)

	if err := proc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	done, err := proc.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !done {
		t.Error("Empty path should finish on the first step")
	}
	if controller.halts != 1 {
		t.Errorf("Expected 1 halt, got %d", controller.halts)
	}
}

func TestTraversalProcedureStop(t *testing.T) {
	controller := &recordingController{}
	proc := NewTraversalProcedure(controller, Path{{X: 1, Y: 2}})

	if err := proc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := proc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if proc.Running() {
		t.Error("Procedure should not be running after Stop")
	}
	if controller.halts != 1 {
		t.Errorf("Expected 1 halt, got %d", controller.halts)
	}

	// Stopping again is a no-op
	if err := proc.Stop(); err != nil {
		t.Errorf("Second Stop should be a no-op, got %v", err)
	}
	if controller.halts != 1 {
		t.Errorf("Second Stop must not halt again, got %d halts", controller.halts)
	}
}

func TestTraversalProcedureNoController(t *testing.T) {
	proc := NewTraversalProcedure(nil, Path{{X: 1, Y: 2}})
	if err := proc.Start(); err == nil {
		t.Error("Expected error starting without a controller")
	}
}

func TestTraversalProcedureControllerFailure(t *testing.T) {
	controller := &recordingController{moveErr: errors.New("motor fault")}
	proc := NewTraversalProcedure(controller, Path{{X: 1, Y: 2}})

	if err := proc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := proc.Step(); err == nil {
		t.Error("Expected wrapped controller error from Step")
	}
}

func TestTraversalProcedurePathSnapshot(t *testing.T) {
	controller := &recordingController{}
	path := Path{{X: 1, Y: 2}}
	proc := NewTraversalProcedure(controller, path)
	path[0] = Point{X: 99, Y: 99}

	if err := proc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := proc.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if controller.moves[0] != (Point{X: 1, Y: 2}) {
		t.Errorf("Procedure must bind a snapshot of the path, moved to %v", controller.moves[0])
	}
}

func TestObjectMoveProcedurePickupFirst(t *testing.T) {
	controller := &recordingController{}
	pickup := Point{X: 1, Y: 2}
	proc := NewObjectMoveProcedure(controller, Path{{X: 3, Y: 4}}, pickup)

	if err := proc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for {
		done, err := proc.Step()
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if done {
			break
		}
	}

	if len(controller.moves) != 2 {
		t.Fatalf("Expected 2 waypoint commands, got %d", len(controller.moves))
	}
	if controller.moves[0] != pickup {
		t.Errorf("Expected pickup point first, got %v", controller.moves[0])
	}
	if controller.moves[1] != (Point{X: 3, Y: 4}) {
		t.Errorf("Expected path waypoint second, got %v", controller.moves[1])
	}
	if controller.halts != 1 {
		t.Errorf("Expected halt at release point, got %d", controller.halts)
	}
}

func TestProcedureIDsAreUnique(t *testing.T) {
	p1 := NewTraversalProcedure(&recordingController{}, nil)
	p2 := NewTraversalProcedure(&recordingController{}, nil)
	if p1.GetID() == p2.GetID() {
		t.Error("Procedure runs must have distinct identifiers")
	}
}
