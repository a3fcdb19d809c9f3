package pheader

type (
	// Header is the fixed 12-byte packet prefix. Length, timestamp and
	// sequence are informational; the logcode id is the key used for
	// metadata lookup.
	Header struct {
		Length    int    `json:"length"`
		LogcodeID int    `json:"logcode_id"`
		Timestamp uint32 `json:"timestamp"`
		Sequence  uint32 `json:"sequence"`
	}
)

const (
	Size = 12
)
