package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manager holds the calibrated acquisition parameters shared across the
// application. The schema matches the calibration JSON file so the same file
// serves both startup configuration and calibration write-back. Fields are
// pointers so partial files keep the defaults for everything they omit.
type Manager struct {
	// Expected robot footprint area in pixels squared
	RobotCalibArea *float64 `json:"robot_calib_area,omitempty"`
	// Expected object footprint area in pixels squared
	ObjectCalibArea *float64 `json:"object_calib_area,omitempty"`
	// Acquisition score threshold; a box is valid strictly below it
	AreaAcqRSigma *float64 `json:"area_acq_r_sigma,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }

// New returns a Manager with all fields unset, so every accessor reports its
// default.
func New() *Manager {
	return &Manager{}
}

// Default returns a Manager populated with the default parameter values.
func Default() *Manager {
	return &Manager{
		RobotCalibArea:  ptrFloat64(3600),
		ObjectCalibArea: ptrFloat64(900),
		AreaAcqRSigma:   ptrFloat64(0.5),
	}
}

// Load reads a Manager from a JSON file. The file must have a .json extension
// and stay under the max file size. Fields omitted from the file retain their
// defaults, so partial configs are safe.
func Load(path string) (*Manager, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("params file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat params file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("params file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse params JSON: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	return m, nil
}

// Save writes the Manager back to a JSON file, typically after a calibration
// run updated the areas.
func (m *Manager) Save(path string) error {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return fmt.Errorf("params file must have .json extension, got %q", ext)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode params JSON: %w", err)
	}
	if err := os.WriteFile(cleanPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write params file: %w", err)
	}
	return nil
}

// Validate checks that the parameter values are usable.
func (m *Manager) Validate() error {
	if m.RobotCalibArea != nil && *m.RobotCalibArea <= 0 {
		return fmt.Errorf("robot_calib_area must be positive, got %f", *m.RobotCalibArea)
	}
	if m.ObjectCalibArea != nil && *m.ObjectCalibArea <= 0 {
		return fmt.Errorf("object_calib_area must be positive, got %f", *m.ObjectCalibArea)
	}
	if m.AreaAcqRSigma != nil && *m.AreaAcqRSigma <= 0 {
		return fmt.Errorf("area_acq_r_sigma must be positive, got %f", *m.AreaAcqRSigma)
	}
	return nil
}

// GetRobotCalibArea returns the robot_calib_area value or the default.
func (m *Manager) GetRobotCalibArea() float64 {
	if m.RobotCalibArea == nil {
		return 3600 // default: 60x60 px footprint
	}
	return *m.RobotCalibArea
}

// GetObjectCalibArea returns the object_calib_area value or the default.
func (m *Manager) GetObjectCalibArea() float64 {
	if m.ObjectCalibArea == nil {
		return 900 // default: 30x30 px footprint
	}
	return *m.ObjectCalibArea
}

// GetAreaAcqRSigma returns the area_acq_r_sigma value or the default.
func (m *Manager) GetAreaAcqRSigma() float64 {
	if m.AreaAcqRSigma == nil {
		return 0.5
	}
	return *m.AreaAcqRSigma
}

// SetRobotCalibArea sets the robot_calib_area value.
func (m *Manager) SetRobotCalibArea(v float64) {
	m.RobotCalibArea = ptrFloat64(v)
}

// SetObjectCalibArea sets the object_calib_area value.
func (m *Manager) SetObjectCalibArea(v float64) {
	m.ObjectCalibArea = ptrFloat64(v)
}

// SetAreaAcqRSigma sets the area_acq_r_sigma value.
func (m *Manager) SetAreaAcqRSigma(v float64) {
	m.AreaAcqRSigma = ptrFloat64(v)
}
