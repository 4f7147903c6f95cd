package compstate

import "math"

// SelectCandidate picks the detection most likely to be the continuation of
// the currently stored box. Hybrid matching: the candidate with the best IoU
// wins; when no candidate overlaps the stored box at all, fall back to the
// nearest center within a gate scaled by the stored box diagonal.
// Returns -1 when no candidate passes the gate.
func SelectCandidate(current Rectangle, candidates []Rectangle) int {
	bestIoU := 0.0
	bestIoUIndex := -1
	for i, candidate := range candidates {
		if iouVal := IoU(current, candidate); iouVal > bestIoU {
			bestIoU = iouVal
			bestIoUIndex = i
		}
	}
	if bestIoUIndex >= 0 {
		return bestIoUIndex
	}

	// Distance fallback for targets that jumped between frames
	currentCenter := current.Center()
	minDistance := math.MaxFloat64
	minIndex := -1
	for i, candidate := range candidates {
		dist := euclideanDistance(currentCenter, candidate.Center())
		if dist < minDistance {
			minDistance = dist
			minIndex = i
		}
	}
	if minIndex >= 0 && minDistance < current.Diagonal()*0.5 {
		return minIndex
	}
	return -1
}
