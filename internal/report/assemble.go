// Package report stamps finished diagnoses with their identity and renders
// them for people and machines.
package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

var (
	idMu     sync.Mutex
	lastUnix int64
)

// NewDiagnosisID returns an identifier of the form CROP_DIAG_<unix-seconds>.
// Two diagnoses finishing within the same second would collide, so the
// counter is bumped past the last issued value; IDs are strictly increasing
// within a process.
func NewDiagnosisID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	unix := now.Unix()
	if unix <= lastUnix {
		unix = lastUnix + 1
	}
	lastUnix = unix
	return fmt.Sprintf("CROP_DIAG_%d", unix)
}

// Finalize stamps a freshly assembled report with its diagnosis ID and
// timestamps. Called exactly once per run, after the last stage completes.
func Finalize(r *model.Report) *model.Report {
	now := time.Now()
	r.DiagnosisID = NewDiagnosisID(now)
	r.CreatedAt = now.UTC()
	r.DateHuman = now.Format("2006-01-02 15:04:05")
	return r
}
