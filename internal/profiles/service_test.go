package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-coach/internal/ats"
	"interview-coach/internal/queue"
)

type memoryBackend struct {
	mu      sync.Mutex
	doc     map[string]UserProfile
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryBackend) Load(ctx context.Context) (map[string]UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]UserProfile, len(m.doc))
	for k, v := range m.doc {
		out[k] = v.Clone()
	}
	return out, nil
}

func (m *memoryBackend) Save(ctx context.Context, profiles map[string]UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.doc = make(map[string]UserProfile, len(profiles))
	for k, v := range profiles {
		m.doc[k] = v.Clone()
	}
	return nil
}

type recordingQueue struct {
	mu   sync.Mutex
	msgs []queue.Message
	err  error
}

func (q *recordingQueue) Send(ctx context.Context, msg queue.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
	return q.err
}

func floatPtr(v float64) *float64 { return &v }

func newTestService(t *testing.T, backend Backend, events queue.Client) *Service {
	t.Helper()
	svc := NewService(context.Background(), backend, events)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRecordSessionCreatesProfile(t *testing.T) {
	backend := &memoryBackend{}
	events := &recordingQueue{}
	svc := newTestService(t, backend, events)

	profile, err := svc.RecordSession(context.Background(), " Ada@Example.com ", SessionInput{
		Answers: json.RawMessage(`{"0":"I like Go"}`),
		Scores:  json.RawMessage(`{"0":90}`),
		ATSData: &ats.Analysis{SuggestedRoles: []string{"Backend Engineer"}, Strengths: []string{"Go"}},
	})
	require.NoError(t, err)

	require.Len(t, profile.Sessions, 1)
	assert.Equal(t, "2026-03-01T12:00:00Z", profile.Sessions[0].Timestamp)
	assert.Zero(t, profile.Sessions[0].CompletionRate)
	assert.Zero(t, profile.Sessions[0].AvgScore)
	assert.JSONEq(t, `{"0":"I like Go"}`, string(profile.Sessions[0].Answers))
	assert.Len(t, profile.ATSHistory, 1)
	assert.Equal(t, 1, profile.PerformanceMetrics.TotalSessions)
	assert.Equal(t, []string{"Backend Engineer"}, profile.PerformanceMetrics.PreferredRoles)

	assert.Equal(t, 1, backend.saves)
	_, stored := backend.doc["ada@example.com"]
	assert.True(t, stored, "expected normalized email key")

	require.Len(t, events.msgs, 1)
	assert.Equal(t, queue.EventSessionRecorded, events.msgs[0].Event)
	assert.Equal(t, "ada@example.com", events.msgs[0].UserEmail)
	assert.Equal(t, 1, events.msgs[0].TotalSessions)
}

func TestRecordSessionMetricsAcrossSessions(t *testing.T) {
	svc := newTestService(t, &memoryBackend{}, nil)
	ctx := context.Background()

	for _, in := range []SessionInput{
		{AvgScore: floatPtr(90), CompletionRate: floatPtr(100)},
		{AvgScore: floatPtr(70), CompletionRate: floatPtr(100)},
		{AvgScore: floatPtr(0), CompletionRate: floatPtr(20)},
	} {
		_, err := svc.RecordSession(ctx, "grace@example.com", in)
		require.NoError(t, err)
	}

	profile, ok := svc.GetUserProfile("grace@example.com")
	require.True(t, ok)
	assert.Equal(t, 3, profile.PerformanceMetrics.TotalSessions)
	assert.InDelta(t, 80.0, profile.PerformanceMetrics.AvgScore, 1e-9)

	criteria, ok := svc.GetPersonalizedJobCriteria("GRACE@example.com")
	require.True(t, ok)
	assert.Equal(t, "mid", criteria.ExperienceLevel)
	assert.Equal(t, 3, criteria.TotalSessions)
}

func TestGetPersonalizedJobCriteriaLevels(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{85, "senior"},
		{65, "mid"},
		{30, "junior"},
	}
	for _, tt := range tests {
		svc := newTestService(t, &memoryBackend{}, nil)
		_, err := svc.RecordSession(context.Background(), "u@example.com", SessionInput{AvgScore: floatPtr(tt.avg)})
		require.NoError(t, err)
		got, ok := svc.GetPersonalizedJobCriteria("u@example.com")
		require.True(t, ok)
		assert.Equal(t, tt.want, got.ExperienceLevel, "avg %v", tt.avg)
	}
}

func TestUnknownUser(t *testing.T) {
	svc := newTestService(t, &memoryBackend{}, nil)

	_, ok := svc.GetPersonalizedJobCriteria("nobody@example.com")
	assert.False(t, ok)

	profile, ok := svc.GetUserProfile("nobody@example.com")
	assert.False(t, ok)
	assert.Empty(t, profile.Sessions)
}

func TestRecordSessionRequiresEmail(t *testing.T) {
	svc := newTestService(t, &memoryBackend{}, nil)
	_, err := svc.RecordSession(context.Background(), "  ", SessionInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordSessionSaveFailureLeavesStateUntouched(t *testing.T) {
	backend := &memoryBackend{saveErr: errors.New("disk full")}
	events := &recordingQueue{}
	svc := newTestService(t, backend, events)

	_, err := svc.RecordSession(context.Background(), "a@example.com", SessionInput{AvgScore: floatPtr(50)})
	assert.ErrorIs(t, err, ErrPersist)

	_, ok := svc.GetUserProfile("a@example.com")
	assert.False(t, ok)
	assert.Empty(t, events.msgs)
}

func TestPublishFailureDoesNotFailRecording(t *testing.T) {
	svc := newTestService(t, &memoryBackend{}, &recordingQueue{err: errors.New("broker down")})
	_, err := svc.RecordSession(context.Background(), "a@example.com", SessionInput{})
	assert.NoError(t, err)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	svc := newTestService(t, &memoryBackend{loadErr: errors.New("corrupt")}, nil)
	_, ok := svc.GetUserProfile("a@example.com")
	assert.False(t, ok)

	_, err := svc.RecordSession(context.Background(), "a@example.com", SessionInput{})
	assert.NoError(t, err)
}

func TestLoadedKeysAreNormalized(t *testing.T) {
	backend := &memoryBackend{doc: map[string]UserProfile{
		"Ada@Example.com": {Sessions: []SessionRecord{{Timestamp: "t1", AvgScore: 50}}},
	}}
	svc := newTestService(t, backend, nil)

	_, ok := svc.GetUserProfile("ada@example.com")
	require.True(t, ok)

	_, err := svc.RecordSession(context.Background(), "Ada@Example.com", SessionInput{AvgScore: floatPtr(70)})
	require.NoError(t, err)

	require.Len(t, backend.doc, 1)
	p := backend.doc["ada@example.com"]
	assert.Len(t, p.Sessions, 2)
	assert.InDelta(t, 60.0, p.PerformanceMetrics.AvgScore, 1e-9)
}

func TestReturnedProfilesAreCopies(t *testing.T) {
	svc := newTestService(t, &memoryBackend{}, nil)
	_, err := svc.RecordSession(context.Background(), "a@example.com", SessionInput{
		ATSData: &ats.Analysis{SuggestedRoles: []string{"SRE"}},
	})
	require.NoError(t, err)

	p, _ := svc.GetUserProfile("a@example.com")
	p.PerformanceMetrics.PreferredRoles[0] = "mutated"
	p.Sessions = append(p.Sessions, SessionRecord{})

	again, _ := svc.GetUserProfile("a@example.com")
	assert.Equal(t, []string{"SRE"}, again.PerformanceMetrics.PreferredRoles)
	assert.Len(t, again.Sessions, 1)
}

func TestConcurrentRecordSession(t *testing.T) {
	backend := &memoryBackend{}
	svc := newTestService(t, backend, nil)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSession(context.Background(), "busy@example.com", SessionInput{AvgScore: floatPtr(50)})
			assert.NoError(t, err)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.GetPersonalizedJobCriteria("busy@example.com")
		}()
	}
	wg.Wait()

	p, ok := svc.GetUserProfile("busy@example.com")
	require.True(t, ok)
	assert.Equal(t, writers, p.PerformanceMetrics.TotalSessions)
	assert.Len(t, backend.doc["busy@example.com"].Sessions, writers)
}
