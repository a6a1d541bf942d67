package monitor

import "time"

// Status is one health snapshot: reachability of the document store and
// the session cache, plus the state of the offline write buffer.
type Status struct {
	Documents  bool      `json:"document_store"`
	Sessions   bool      `json:"session_cache"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}
