// Package cache holds derived adherence summaries between writes. Entries
// are keyed per subject, treatment and day so a write invalidates by prefix.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/adhere/internal/config"
	"github.com/julianstephens/adhere/internal/constants"
)

// Cache is a best-effort byte store. A miss or backend failure on Get is
// reported as ok == false; callers recompute.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// SummaryKey is the key of one derived summary.
func SummaryKey(subjectID, treatmentType, today string) string {
	return constants.CacheKeyPrefix + subjectID + ":" + treatmentType + ":" + today
}

// SubjectPrefix matches every summary of a subject.
func SubjectPrefix(subjectID string) string {
	return constants.CacheKeyPrefix + subjectID + ":"
}

// TreatmentPrefix matches every summary of one subject/treatment pair.
func TreatmentPrefix(subjectID, treatmentType string) string {
	return SubjectPrefix(subjectID) + treatmentType + ":"
}

// New builds the cache selected by cfg.Backend.
func New(cfg config.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", constants.CacheBackendMemory:
		return NewMemory(), nil
	case constants.CacheBackendRedis:
		return NewRedis(cfg.Redis), nil
	case constants.CacheBackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) DeletePrefix(context.Context, string) error { return nil }
