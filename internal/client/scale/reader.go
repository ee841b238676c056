// Package scale reads the weight sample file the scale-head hardware
// maintains. Reads are best effort: any problem, including a stale
// sample, reads as zero grams rather than an error.
package scale

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

type sample struct {
	Grams      int64     `json:"grams"`
	CapturedAt time.Time `json:"capturedAt"`
}

type Reader struct {
	path   string
	maxAge time.Duration
	logger *log.Logger
	now    func() time.Time
}

func New(path string, maxAge time.Duration, logger *log.Logger) *Reader {
	return &Reader{path: path, maxAge: maxAge, logger: logger, now: time.Now}
}

// Read returns the current weight in grams, or 0 when the sample file is
// missing, unreadable, stale or negative.
func (r *Reader) Read() int64 {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Printf("read scale file: %v", err)
		return 0
	}

	var s sample
	if err := json.Unmarshal(raw, &s); err != nil {
		r.logger.Printf("parse scale sample: %v", err)
		return 0
	}
	if s.Grams < 0 {
		return 0
	}
	if r.maxAge > 0 && !s.CapturedAt.IsZero() && r.now().Sub(s.CapturedAt) > r.maxAge {
		return 0
	}
	return s.Grams
}
