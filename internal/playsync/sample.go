// Package playsync maintains the authoritative playback position for a
// video session. Real time samples from the external player arrive at
// irregular intervals; the engine reconciles them with a local simulation
// clock so time-indexed features see a smooth, monotonic value.
package playsync

import "time"

// Sample is one player-reported playback position. Immutable once created.
type Sample struct {
	// Time is the reported position in seconds.
	Time float64
	// ObservedAt is the wall-clock instant the report was received.
	ObservedAt time.Time
	// Generation identifies the player instance the sample came from.
	// Samples from a destroyed instance carry a stale token and are
	// dropped.
	Generation string
}

// SeekRequest is the decoupled seek signal carried by the Bus, so note and
// quiz panels can request playback jumps without a player reference.
type SeekRequest struct {
	Time float64 `json:"time"`
}
