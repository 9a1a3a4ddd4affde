package profiles

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"interview-coach/internal/queue"
	"interview-coach/internal/shared/metrics"
	"interview-coach/internal/shared/telemetry"
)

const publishTimeout = 5 * time.Second

// Service owns the profile collection. Reads run concurrently; writes are
// serialized and the whole collection is saved before memory is updated.
type Service struct {
	mu       sync.RWMutex
	backend  Backend
	profiles map[string]UserProfile
	events   queue.Client
	now      func() time.Time
}

// NewService loads the collection from backend. An unreadable document starts
// the service with an empty collection.
func NewService(ctx context.Context, backend Backend, events queue.Client) *Service {
	if events == nil {
		events = queue.Nop{}
	}
	s := &Service{
		backend:  backend,
		profiles: map[string]UserProfile{},
		events:   events,
		now:      time.Now,
	}

	loaded, err := backend.Load(ctx)
	if err != nil {
		telemetry.Warn("profiles.load.failed", map[string]any{"error": err})
		return s
	}
	s.profiles = normalizeProfiles(loaded)
	telemetry.Info("profiles.loaded", map[string]any{"count": len(s.profiles)})
	return s
}

// NormalizeEmail is the identity key used for profiles.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RecordSession appends a session, recomputes metrics and persists the collection.
func (s *Service) RecordSession(ctx context.Context, email string, in SessionInput) (UserProfile, error) {
	key := NormalizeEmail(email)
	if key == "" {
		return UserProfile{}, fmt.Errorf("%w: user_email is required", ErrInvalidInput)
	}

	record := SessionRecord{
		Timestamp: strings.TrimSpace(in.Timestamp),
		Answers:   cloneRaw(in.Answers),
		Scores:    cloneRaw(in.Scores),
	}
	if record.Timestamp == "" {
		record.Timestamp = s.now().UTC().Format(time.RFC3339)
	}
	if in.CompletionRate != nil {
		record.CompletionRate = *in.CompletionRate
	}
	if in.AvgScore != nil {
		record.AvgScore = *in.AvgScore
	}

	s.mu.Lock()
	profile, ok := s.profiles[key]
	if ok {
		profile = profile.Clone()
	} else {
		profile = newProfile()
	}
	profile.Sessions = append(profile.Sessions, record)
	if in.ATSData != nil {
		profile.ATSHistory = append(profile.ATSHistory, in.ATSData.Clone())
	}
	profile.PerformanceMetrics = computeMetrics(profile)

	next := make(map[string]UserProfile, len(s.profiles)+1)
	for k, v := range s.profiles {
		next[k] = v
	}
	next[key] = profile

	if err := s.backend.Save(ctx, next); err != nil {
		s.mu.Unlock()
		telemetry.Error("profiles.save.failed", map[string]any{"user_email": key, "error": err})
		return UserProfile{}, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	s.profiles = next
	s.mu.Unlock()

	metrics.IncSessionRecorded()
	s.publish(ctx, key, profile)
	return profile.Clone(), nil
}

func (s *Service) publish(ctx context.Context, email string, profile UserProfile) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := queue.Message{
		Event:         queue.EventSessionRecorded,
		UserEmail:     email,
		TotalSessions: profile.PerformanceMetrics.TotalSessions,
		AvgScore:      profile.PerformanceMetrics.AvgScore,
		RequestID:     RequestIDFromContext(ctx),
		EnqueuedAt:    s.now().UTC().Format(time.RFC3339),
		Version:       1,
	}
	if err := s.events.Send(ctx, msg); err != nil {
		telemetry.Warn("profiles.event.publish_failed", map[string]any{
			"user_email": email,
			"event":      msg.Event,
			"error":      err,
		})
	}
}

// GetUserProfile returns a copy of the profile, or false when none exists.
func (s *Service) GetUserProfile(email string) (UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[NormalizeEmail(email)]
	if !ok {
		return UserProfile{}, false
	}
	return p.Clone(), true
}

// GetPersonalizedJobCriteria derives job-matching inputs from the profile, or false when none exists.
func (s *Service) GetPersonalizedJobCriteria(email string) (PersonalizedCriteria, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[NormalizeEmail(email)]
	if !ok {
		return PersonalizedCriteria{}, false
	}
	m := p.PerformanceMetrics
	return PersonalizedCriteria{
		ExperienceLevel: experienceLevel(m.AvgScore),
		PreferredRoles:  append([]string{}, m.PreferredRoles...),
		SkillStrengths:  append([]string{}, m.SkillStrengths...),
		TotalSessions:   m.TotalSessions,
	}, true
}

type requestIDKey struct{}

// WithRequestID tags ctx so published events carry the originating request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
