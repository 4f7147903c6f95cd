package compstate

import (
	"math"
	"testing"
)

func TestAcquisitionRZeroArea(t *testing.T) {
	rect := NewRect(5, 5, 0, 10)
	for _, calibArea := range []float64{0, 1, 100, 1e6} {
		if score := AcquisitionR(rect, calibArea); score != 1000 {
			t.Errorf("Expected sentinel 1000 for zero area (calib %f), got %f", calibArea, score)
		}
	}
}

func TestAcquisitionRDegenerateAspect(t *testing.T) {
	// Negative width drives the normalized aspect ratio below the 0.99 cutoff
	rect := NewRect(0, 0, -10, 10)
	if score := AcquisitionR(rect, 100); score != 1000 {
		t.Errorf("Expected sentinel 1000 for degenerate aspect, got %f", score)
	}
}

func TestAcquisitionRPerfectSquare(t *testing.T) {
	rect := NewRect(0, 0, 10, 10)
	if score := AcquisitionR(rect, 100); score != 0 {
		t.Errorf("Expected score 0 for calibrated square, got %f", score)
	}
}

func TestAcquisitionRElongated(t *testing.T) {
	// Area 200 against calibrated 100 with aspect ratio 2: 100/200 * 2 = 1
	rect := NewRect(0, 0, 20, 10)
	if score := AcquisitionR(rect, 100); math.Abs(score-1.0) > eps {
		t.Errorf("Expected score 1.0, got %f", score)
	}
}

func TestAcquisitionRAreaMismatch(t *testing.T) {
	// Square of area 400 against calibrated 100: 300/400 * 1 = 0.75
	rect := NewRect(0, 0, 20, 20)
	if score := AcquisitionR(rect, 100); math.Abs(score-0.75) > eps {
		t.Errorf("Expected score 0.75, got %f", score)
	}
}

func TestAssignRolesEmpty(t *testing.T) {
	assignment := AssignRoles(nil, 3600, 900)
	if assignment.Robot != -1 || assignment.Object != -1 {
		t.Errorf("Expected no assignment for empty candidates, got %+v", assignment)
	}
}

func TestAssignRolesBothRoles(t *testing.T) {
	candidates := []Rectangle{
		NewRect(0, 0, 60, 60),     // robot footprint
		NewRect(100, 100, 30, 30), // object footprint
	}
	assignment := AssignRoles(candidates, 3600, 900)
	if assignment.Robot != 0 {
		t.Errorf("Expected robot candidate 0, got %d", assignment.Robot)
	}
	if assignment.Object != 1 {
		t.Errorf("Expected object candidate 1, got %d", assignment.Object)
	}

	// Swapped candidate order must swap the assignment
	assignment = AssignRoles([]Rectangle{candidates[1], candidates[0]}, 3600, 900)
	if assignment.Robot != 1 || assignment.Object != 0 {
		t.Errorf("Expected swapped assignment, got %+v", assignment)
	}
}

func TestAssignRolesSingleCandidate(t *testing.T) {
	candidates := []Rectangle{
		NewRect(100, 100, 30, 30),
	}
	assignment := AssignRoles(candidates, 3600, 900)
	if assignment.Object != 0 {
		t.Errorf("Expected object candidate 0, got %d", assignment.Object)
	}
	if assignment.Robot == 0 {
		t.Error("Single object-sized candidate must not be claimed by the robot role")
	}
}

func TestAssignRolesDegenerateCandidates(t *testing.T) {
	candidates := []Rectangle{
		NewRect(0, 0, 0, 10),
		NewRect(0, 0, -5, 5),
	}
	assignment := AssignRoles(candidates, 3600, 900)
	if assignment.Robot != -1 || assignment.Object != -1 {
		t.Errorf("Expected no assignment for sentinel-only candidates, got %+v", assignment)
	}
}
