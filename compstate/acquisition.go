package compstate

import (
	"math"

	"github.com/arthurkushman/go-hungarian"
)

// invalidScore is the sentinel returned for boxes that cannot contain the
// tracked object or robot at all.
const invalidScore = 1000

// AcquisitionR determines the likelihood that a bounding box actually contains
// the object or robot that is tracked, based on the squareness of the
// rectangle and its closeness to the calibrated area. Lower is better: a
// perfect square whose area equals the calibrated area scores 0. Degenerate
// boxes score the invalidScore sentinel.
//
// Based off formula in
// https://users.cs.cf.ac.uk/Paul.Rosin/resources/papers/squareness-JMIV-postprint.pdf
func AcquisitionR(rect Rectangle, calibratedArea float64) float64 {
	area := rect.Width * rect.Height
	if area == 0 {
		return invalidScore
	}
	t := rect.Width / rect.Height
	if rect.Height > rect.Width {
		t = rect.Height / rect.Width
	}
	if t <= 0.99 {
		return invalidScore
	}
	return math.Abs(area-calibratedArea) / maxFloat64(area, calibratedArea) * t
}

// RoleAssignment holds indices into a candidate detection slice for each
// acquisition role. -1 means no candidate could be assigned to the role.
type RoleAssignment struct {
	Robot  int
	Object int
}

// AssignRoles matches candidate detections to the robot and object roles so
// that the total acquisition score is minimal. Uses the Hungarian algorithm on
// a fitness matrix (higher fitness = lower score), padded to square the same
// way tracker matching pads rectangular IoU matrices.
func AssignRoles(candidates []Rectangle, robotCalibArea, objectCalibArea float64) RoleAssignment {
	assignment := RoleAssignment{Robot: -1, Object: -1}
	if len(candidates) == 0 {
		return assignment
	}

	calibAreas := []float64{robotCalibArea, objectCalibArea}
	numRoles := len(calibAreas)
	numCandidates := len(candidates)

	paddedSize := maxInt(numRoles, numCandidates)
	fitnessMatrix := make([][]float64, paddedSize)
	for i := 0; i < paddedSize; i++ {
		fitnessMatrix[i] = make([]float64, paddedSize)
	}
	for i, calibArea := range calibAreas {
		for j, candidate := range candidates {
			score := AcquisitionR(candidate, calibArea)
			if score >= invalidScore {
				// Sentinel candidates keep the padding fitness of 0
				continue
			}
			fitnessMatrix[i][j] = 1.0 / (1.0 + score)
		}
	}

	assignmentsMap := hungarian.SolveMax(fitnessMatrix)
	for roleIndex, rowMap := range assignmentsMap {
		if roleIndex >= numRoles {
			continue
		}
		for candidateIndex, fitness := range rowMap {
			if candidateIndex >= numCandidates || fitness == 0 {
				continue
			}
			switch roleIndex {
			case 0:
				assignment.Robot = candidateIndex
			case 1:
				assignment.Object = candidateIndex
			}
			break
		}
	}
	return assignment
}
