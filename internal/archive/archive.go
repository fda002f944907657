// Package archive receives finalized report submissions. The form engines
// hand over complete records; this package is the injectable sink a real
// deployment points at its records system — the default implementation just
// files JSON documents locally, the S3 implementation ships them to object
// storage.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission kinds.
const (
	KindMonthlySummary = "monthly_summary"
	KindActSummary     = "act_summary"
	KindChildLabour    = "child_labour_batch"
	KindRosterBackup   = "roster_backup"
)

// Submission wraps one submitted report with who filed it and when.
// Payload is the record exactly as the form engine finalized it.
type Submission struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	SubmittedBy  string          `json:"submittedBy"`
	Role         string          `json:"role"`
	Jurisdiction string          `json:"jurisdiction"`
	Period       string          `json:"period,omitempty"`
	SubmittedAt  time.Time       `json:"submittedAt"`
	Payload      json.RawMessage `json:"payload"`
}

// NewSubmission stamps a submission with a fresh id and the current time.
func NewSubmission(kind, submittedBy, role, jurisdiction, period string, payload interface{}) (Submission, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Submission{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return Submission{
		ID:           uuid.NewString(),
		Kind:         kind,
		SubmittedBy:  submittedBy,
		Role:         role,
		Jurisdiction: jurisdiction,
		Period:       period,
		SubmittedAt:  time.Now().UTC(),
		Payload:      raw,
	}, nil
}

// Sink stores finalized submissions.
type Sink interface {
	Save(ctx context.Context, sub Submission) error
	// List returns stored submissions, newest first. kind filters when
	// non-empty.
	List(ctx context.Context, kind string) ([]Submission, error)
}

// ── Local filesystem sink ──────────────────────────────────────

// LocalSink files each submission as <dir>/<kind>/<id>.json.
// This is the default sink — swap to S3Sink by changing one line in main.
type LocalSink struct {
	dir string
}

// NewLocalSink creates the archive directory if needed.
func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &LocalSink{dir: dir}, nil
}

// Save writes the submission document.
func (s *LocalSink) Save(ctx context.Context, sub Submission) error {
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	kindDir := filepath.Join(s.dir, sub.Kind)
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return fmt.Errorf("create kind dir: %w", err)
	}
	return os.WriteFile(filepath.Join(kindDir, sub.ID+".json"), data, 0o644)
}

// List reads back stored submissions, newest first.
func (s *LocalSink) List(ctx context.Context, kind string) ([]Submission, error) {
	var subs []Submission

	walkErr := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return err
		}
		if kind != "" && filepath.Base(filepath.Dir(path)) != kind {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		var sub Submission
		if jsonErr := json.Unmarshal(data, &sub); jsonErr != nil {
			// Skip unreadable documents instead of failing the listing.
			return nil
		}
		subs = append(subs, sub)
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, os.ErrNotExist) {
		return nil, walkErr
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.After(subs[j].SubmittedAt)
	})
	return subs, nil
}
