package types

import "time"

type (
	// ChunkMetrics describes one vendor request
	ChunkMetrics struct {
		Locale string `json:"locale"`
		// Error code of the chunk, NONE when it succeeded
		ErrorCode string    `json:"error_code"`
		IDs       int       `json:"ids"`
		Items     int       `json:"items"`
		Start     time.Time `json:"start"`
	}

	// LookupMetrics describes one call of the batching lookup
	LookupMetrics struct {
		Locale string `json:"locale"`
		IDs    int    `json:"ids"`
		Chunks int    `json:"chunks"`
		Items  int    `json:"items"`
		// Chunks that returned an error
		Failures int       `json:"failures"`
		Start    time.Time `json:"start"`
	}
)
