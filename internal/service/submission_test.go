package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/repository"
	"github.com/campusday/orientation-api/internal/service"
)

// fakeSubmissionRepo enforces the same atomic uniqueness guarantee the
// Postgres composite index gives: Create either inserts the first row
// for a (student, activity) pair or fails with ErrSubmissionExists,
// atomically under the mutex.
type fakeSubmissionRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]domain.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		nextID: 1,
		rows:   make(map[string]domain.Submission),
	}
}

func pairKey(studentID, activityID uint) string {
	return fmt.Sprintf("%d/%d", studentID, activityID)
}

func (f *fakeSubmissionRepo) Create(_ context.Context, s domain.Submission) (domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey(s.StudentID, s.ActivityID)
	if _, ok := f.rows[key]; ok {
		return domain.Submission{}, repository.ErrSubmissionExists
	}

	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Now()
	f.rows[key] = s

	return s, nil
}

func (f *fakeSubmissionRepo) FindByID(_ context.Context, id uint) (domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.rows {
		if s.ID == id {
			return s, nil
		}
	}

	return domain.Submission{}, repository.ErrSubmissionNotFound
}

func (f *fakeSubmissionRepo) ExistsByStudentAndActivity(_ context.Context, studentID, activityID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.rows[pairKey(studentID, activityID)]

	return ok, nil
}

func (f *fakeSubmissionRepo) UpdateStatus(_ context.Context, id uint, status domain.SubmissionStatus) (domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, s := range f.rows {
		if s.ID == id {
			s.Status = status
			f.rows[key] = s

			return s, nil
		}
	}

	return domain.Submission{}, repository.ErrSubmissionNotFound
}

func (f *fakeSubmissionRepo) List(_ context.Context) ([]domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Submission, 0, len(f.rows))
	for _, s := range f.rows {
		out = append(out, s)
	}

	return out, nil
}

func (f *fakeSubmissionRepo) ListByStudent(_ context.Context, studentID uint) ([]domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Submission
	for _, s := range f.rows {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeSubmissionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.rows)
}

type fakeActivityRepo struct {
	activities map[uint]domain.Activity
}

func (f *fakeActivityRepo) FindByID(_ context.Context, id uint) (domain.Activity, error) {
	a, ok := f.activities[id]
	if !ok {
		return domain.Activity{}, repository.ErrActivityNotFound
	}

	return a, nil
}

func (f *fakeActivityRepo) Create(_ context.Context, a domain.Activity) (domain.Activity, error) {
	f.activities[a.ID] = a

	return a, nil
}

func (f *fakeActivityRepo) List(_ context.Context) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(f.activities))
	for _, a := range f.activities {
		out = append(out, a)
	}

	return out, nil
}

func (f *fakeActivityRepo) Update(_ context.Context, a domain.Activity) (domain.Activity, error) {
	if _, ok := f.activities[a.ID]; !ok {
		return domain.Activity{}, repository.ErrActivityNotFound
	}
	f.activities[a.ID] = a

	return a, nil
}

func newTestService() (*service.SubmissionService, *fakeSubmissionRepo) {
	repo := newFakeSubmissionRepo()
	activities := &fakeActivityRepo{activities: map[uint]domain.Activity{
		1: {
			ID:                 1,
			Title:              "Orientation quiz",
			RequiresSubmission: true,
			SubmissionKind:     domain.KindText,
		},
		2: {
			ID:                 2,
			Title:              "Campus photo hunt",
			RequiresSubmission: true,
			SubmissionKind:     domain.KindFile,
			MaxSizeMiB:         10,
		},
		3: {
			ID:    3,
			Title: "Welcome address",
		},
		4: {
			ID:                 4,
			Title:              "Team repo setup",
			RequiresSubmission: true,
			SubmissionKind:     domain.KindLink,
		},
	}}

	return service.NewSubmissionService(repo, activities), repo
}

func TestSubmit_ValidationSequence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		activityID uint
		payload    domain.Payload
		wantErr    error
	}{
		{
			name:       "unknown activity",
			activityID: 99,
			payload:    domain.TextPayload{Content: "hi"},
			wantErr:    service.ErrActivityNotFound,
		},
		{
			name:       "activity without submission contract",
			activityID: 3,
			payload:    domain.TextPayload{Content: "hi"},
			wantErr:    service.ErrSubmissionNotAccepted,
		},
		{
			name:       "kind mismatch",
			activityID: 1,
			payload:    domain.LinkPayload{Content: "https://example.com"},
			wantErr:    service.ErrWrongSubmissionKind,
		},
		{
			name:       "empty text content",
			activityID: 1,
			payload:    domain.TextPayload{},
			wantErr:    service.ErrEmptyContent,
		},
		{
			name:       "file without descriptor",
			activityID: 2,
			payload:    domain.FilePayload{},
			wantErr:    service.ErrFileDescriptorMissing,
		},
		{
			name:       "file without a name",
			activityID: 2,
			payload:    domain.FilePayload{URL: "https://files.example.com/a.pdf", Size: 1},
			wantErr:    service.ErrFileDescriptorMissing,
		},
		{
			name:       "file URL is not a URL",
			activityID: 2,
			payload:    domain.FilePayload{URL: "not a url", Name: "a.pdf", Size: 1},
			wantErr:    service.ErrMalformedURL,
		},
		{
			name:       "link that is not a URL",
			activityID: 4,
			payload:    domain.LinkPayload{Content: "not a url"},
			wantErr:    service.ErrMalformedURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()

			_, err := svc.Submit(ctx, 1, tt.activityID, tt.payload)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.count(), "no row may be created on a failed submit")
		})
	}
}

func TestSubmit_FileSizeBoundary(t *testing.T) {
	ctx := context.Background()
	limit := int64(10) << 20 // activity 2 declares 10 MiB

	t.Run("exactly at the limit succeeds", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Submit(ctx, 1, 2, domain.FilePayload{
			URL:  "https://files.example.com/proof.zip",
			Name: "proof.zip",
			Size: limit,
		})

		require.NoError(t, err)
		assert.Equal(t, limit, created.FileSize)
		assert.Equal(t, domain.StatusSubmitted, created.Status)
	})

	t.Run("one byte over is rejected", func(t *testing.T) {
		svc, repo := newTestService()

		_, err := svc.Submit(ctx, 1, 2, domain.FilePayload{
			URL:  "https://files.example.com/proof.zip",
			Name: "proof.zip",
			Size: limit + 1,
		})

		assert.ErrorIs(t, err, service.ErrFileTooLarge)
		assert.Zero(t, repo.count())
	})
}

// A resubmit attempt is a conflict even when its payload would not have
// passed the shape checks: the duplicate test runs first.
func TestSubmit_DuplicateWinsOverBadPayload(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.Submit(ctx, 1, 1, domain.TextPayload{Content: "my answer"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, 1, 1, domain.TextPayload{})
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted)
	assert.NotErrorIs(t, err, service.ErrEmptyContent)

	_, err = svc.Submit(ctx, 1, 1, domain.FilePayload{})
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted,
		"even a wrong-kind resubmit reports the conflict")

	assert.Equal(t, 1, repo.count())
}

func TestSubmit_IdempotentRetry(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	first, err := svc.Submit(ctx, 1, 1, domain.TextPayload{Content: "my answer"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, first.Status)

	_, err = svc.Submit(ctx, 1, 1, domain.TextPayload{Content: "my answer"})
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted)

	assert.Equal(t, 1, repo.count(), "retry must never create a second row")
}

func TestSubmit_ConcurrentCallsYieldOneRow(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	const n = 32

	var (
		wg        sync.WaitGroup
		successes int
		conflicts int
		mu        sync.Mutex
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := svc.Submit(ctx, 7, 1, domain.TextPayload{Content: fmt.Sprintf("attempt %d", i)})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, service.ErrAlreadySubmitted):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one concurrent submit may win")
	assert.Equal(t, n-1, conflicts, "all losers must see the conflict error")
	assert.Equal(t, 1, repo.count())
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Submit(ctx, 1, 1, domain.TextPayload{Content: "late work"})
	require.NoError(t, err)

	t.Run("admin overrides to late", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, 100, created.ID, domain.StatusLate)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusLate, updated.Status)
	})

	t.Run("any status may follow any other", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, 100, created.ID, domain.StatusSubmitted)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusSubmitted, updated.Status)
	})

	t.Run("unknown submission", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, 100, 999, domain.StatusPending)

		assert.ErrorIs(t, err, service.ErrSubmissionNotFound)
	})

	t.Run("unknown status value", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, 100, created.ID, "graded")

		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})
}

// The day in the life of a submission: a student submits text at 14:00,
// an admin flags it late, a second submit conflicts.
func TestSubmissionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	sub, err := svc.Submit(ctx, 1, 1, domain.TextPayload{Content: "my reflections on day one"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, sub.Status)
	assert.Equal(t, domain.KindText, sub.Kind)
	assert.False(t, sub.CreatedAt.IsZero(), "creation timestamp is server-assigned")

	flagged, err := svc.SetStatus(ctx, 42, sub.ID, domain.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLate, flagged.Status)

	_, err = svc.Submit(ctx, 1, 1, domain.TextPayload{Content: "other content"})
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted)

	assert.Equal(t, 1, repo.count())
}
