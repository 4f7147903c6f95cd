package compstate

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// minCalibSigma is the floor for the derived validity threshold, so that a
// calibration run with near-identical samples still accepts real detections.
const minCalibSigma = 0.05

// Calibration is the result of a calibration run over sample boxes captured
// while the target is known to be in view.
type Calibration struct {
	// Expected footprint area of the target
	Area float64
	// Acquisition score threshold below which a box counts as valid
	Sigma float64
}

// Calibrate derives the expected footprint area and a validity threshold from
// sample boxes. The area is the mean sample area; sigma is the mean
// acquisition score of the samples against that area plus two standard
// deviations, clamped to minCalibSigma.
func Calibrate(samples []Rectangle) (Calibration, error) {
	if len(samples) == 0 {
		return Calibration{}, errors.New("no calibration samples")
	}

	areas := make([]float64, 0, len(samples))
	for _, sample := range samples {
		if sample.Area() == 0 {
			continue
		}
		areas = append(areas, sample.Area())
	}
	if len(areas) == 0 {
		return Calibration{}, errors.New("all calibration samples have zero area")
	}
	calibArea := stat.Mean(areas, nil)

	scores := make([]float64, 0, len(samples))
	for _, sample := range samples {
		score := AcquisitionR(sample, calibArea)
		if score >= invalidScore {
			continue
		}
		scores = append(scores, score)
	}
	if len(scores) == 0 {
		return Calibration{}, errors.New("no calibration sample passes the squareness filter")
	}

	sigma := stat.Mean(scores, nil)
	if len(scores) > 1 {
		sigma += 2 * stat.StdDev(scores, nil)
	}
	if sigma < minCalibSigma {
		sigma = minCalibSigma
	}
	return Calibration{Area: calibArea, Sigma: sigma}, nil
}
