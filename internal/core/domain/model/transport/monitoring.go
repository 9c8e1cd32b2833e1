package transport

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"
)

// LocationSample is the last reported position of the vehicle.
type LocationSample struct {
	Point      kernel.GeoPoint
	RecordedAt time.Time
}

// MonitoringSample is one environmental reading taken during the leg.
type MonitoringSample struct {
	Temperature *float64
	Humidity    *float64
	RecordedAt  time.Time
}
