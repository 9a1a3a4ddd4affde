package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"interview-coach/internal/ats"
	"interview-coach/internal/shared/storage/object"
)

// Backend persists the whole profile collection as one document.
type Backend interface {
	Load(ctx context.Context) (map[string]UserProfile, error)
	Save(ctx context.Context, profiles map[string]UserProfile) error
}

// ObjectBackend stores the collection as an indented JSON object in an object store.
type ObjectBackend struct {
	Store object.ObjectStore
	Key   string
}

// NewObjectBackend constructs an ObjectBackend.
func NewObjectBackend(store object.ObjectStore, key string) *ObjectBackend {
	return &ObjectBackend{Store: store, Key: key}
}

// Load reads the document. A missing document is an empty collection.
func (b *ObjectBackend) Load(ctx context.Context) (map[string]UserProfile, error) {
	rc, err := b.Store.Open(ctx, b.Key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return map[string]UserProfile{}, nil
		}
		return nil, fmt.Errorf("open profiles %s: %w", b.Key, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", b.Key, err)
	}
	return decodeDocument(raw)
}

// Save overwrites the document.
func (b *ObjectBackend) Save(ctx context.Context, profiles map[string]UserProfile) error {
	raw, err := encodeDocument(profiles)
	if err != nil {
		return err
	}
	if _, err := b.Store.Put(ctx, b.Key, "application/json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("write profiles %s: %w", b.Key, err)
	}
	return nil
}

func decodeDocument(raw []byte) (map[string]UserProfile, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]UserProfile{}, nil
	}
	var out map[string]UserProfile
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return normalizeProfiles(out), nil
}

// normalizeProfiles rekeys the collection by NormalizeEmail. Profiles whose
// keys collapse to the same email are merged in key order. Metrics are
// recomputed for every profile.
func normalizeProfiles(in map[string]UserProfile) map[string]UserProfile {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]UserProfile, len(in))
	for _, k := range keys {
		email := NormalizeEmail(k)
		if email == "" {
			continue
		}
		p := in[k]
		if prev, ok := out[email]; ok {
			p.Sessions = append(append([]SessionRecord{}, prev.Sessions...), p.Sessions...)
			p.ATSHistory = append(append([]ats.Analysis{}, prev.ATSHistory...), p.ATSHistory...)
		}
		if p.Sessions == nil {
			p.Sessions = []SessionRecord{}
		}
		if p.ATSHistory == nil {
			p.ATSHistory = []ats.Analysis{}
		}
		p.PerformanceMetrics = computeMetrics(p)
		out[email] = p
	}
	return out
}

func encodeDocument(profiles map[string]UserProfile) ([]byte, error) {
	if profiles == nil {
		profiles = map[string]UserProfile{}
	}
	raw, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profiles: %w", err)
	}
	return raw, nil
}

var _ Backend = (*ObjectBackend)(nil)
