package domain

import "time"

// SensorReading is one telemetry sample reported by a room monitor.
type SensorReading struct {
	ID          int64     `json:"id,omitempty"`
	DeviceID    string    `json:"device_id"`
	PatientID   string    `json:"patient_id,omitempty"`
	Temperature float64   `json:"temperature"`
	MotionLevel int       `json:"motion_level"`
	SoundLevel  int       `json:"sound_level"`
	Timestamp   time.Time `json:"timestamp"`
}

// Activity classes produced by the ML classification service.
const (
	ActivitySleeping     = "SLEEPING"
	ActivityResting      = "RESTING"
	ActivityActive       = "ACTIVE"
	ActivityRestless     = "RESTLESS"
	ActivityFallRisk     = "FALL_RISK"
	ActivityFallDetected = "FALL_DETECTED"
)

// ActivityClasses lists every class the classifier can emit, in display order.
var ActivityClasses = []string{
	ActivitySleeping,
	ActivityResting,
	ActivityActive,
	ActivityRestless,
	ActivityFallRisk,
	ActivityFallDetected,
}

// RiskLevel maps an activity class to an operator-facing risk bucket.
func RiskLevel(activityClass string) (level, color string) {
	switch activityClass {
	case ActivityFallDetected:
		return "critical", "red"
	case ActivityFallRisk:
		return "high", "orange"
	case ActivityRestless:
		return "elevated", "yellow"
	default:
		return "normal", "green"
	}
}
