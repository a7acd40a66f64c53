package handler

import "time"

type sensorReadingRequest struct {
	DeviceID    string    `json:"device_id"    validate:"required,max=64"`
	PatientID   string    `json:"patient_id"   validate:"max=64"`
	Temperature float64   `json:"temperature"`
	MotionLevel int       `json:"motion_level"`
	SoundLevel  int       `json:"sound_level"`
	Timestamp   time.Time `json:"timestamp"    validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

