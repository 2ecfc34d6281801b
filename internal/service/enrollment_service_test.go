package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// fakeAdmissionStore implements AdmissionStore with a deliberately
// non-atomic Admit: the store yields between the capacity check and the
// insert. Without the service's per-section serialization, concurrent
// admissions against one remaining seat would both pass the check.
type fakeAdmissionStore struct {
	mu          sync.Mutex
	capacity    map[int64]int
	enrollments map[int64]*model.Enrollment
	nextID      int64
}

func newFakeStore() *fakeAdmissionStore {
	return &fakeAdmissionStore{
		capacity:    make(map[int64]int),
		enrollments: make(map[int64]*model.Enrollment),
	}
}

func (f *fakeAdmissionStore) countLocked(sectionID int64) int {
	n := 0
	for _, e := range f.enrollments {
		if e.SectionID == sectionID {
			n++
		}
	}
	return n
}

func (f *fakeAdmissionStore) Admit(ctx context.Context, studentID, sectionID int64) (*model.Enrollment, error) {
	f.mu.Lock()
	capacity, ok := f.capacity[sectionID]
	if !ok {
		f.mu.Unlock()
		return nil, apperrors.ErrNotFound
	}
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.SectionID == sectionID {
			f.mu.Unlock()
			return nil, apperrors.ErrAlreadyEnrolled
		}
	}
	enrolled := f.countLocked(sectionID)
	f.mu.Unlock()

	// The check-then-act gap.
	runtime.Gosched()

	if enrolled >= capacity {
		return nil, apperrors.ErrSectionFull
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := &model.Enrollment{ID: f.nextID, StudentID: studentID, SectionID: sectionID}
	f.enrollments[e.ID] = e
	return e, nil
}

func (f *fakeAdmissionStore) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return e, nil
}

func (f *fakeAdmissionStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.enrollments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func (f *fakeAdmissionStore) Seats(ctx context.Context, sectionID int64) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	capacity, ok := f.capacity[sectionID]
	if !ok {
		return 0, 0, apperrors.ErrNotFound
	}
	return capacity, f.countLocked(sectionID), nil
}

func (f *fakeAdmissionStore) Transcript(ctx context.Context, studentID int64) ([]model.TranscriptEntry, error) {
	return nil, nil
}

func (f *fakeAdmissionStore) Roster(ctx context.Context, sectionID int64) ([]model.RosterEntry, error) {
	return nil, nil
}

func newTestEnrollmentService(store AdmissionStore) *EnrollmentService {
	return NewEnrollmentService(store, nil, zerolog.Nop())
}

func TestAdmitExactlyOneWinsLastSeat(t *testing.T) {
	store := newFakeStore()
	store.capacity[1] = 1
	svc := newTestEnrollmentService(store)

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Admit(context.Background(), int64(100+i), 1)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrSectionFull)
		}
	}
	assert.Equal(t, 1, successes, "exactly one admission may win the last seat")

	_, enrolled, err := store.Seats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled, "enrollment count must never exceed capacity")
}

func TestAdmitCapacityNeverExceeded(t *testing.T) {
	store := newFakeStore()
	store.capacity[7] = 5
	svc := newTestEnrollmentService(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.Admit(context.Background(), int64(i), 7)
		}(i)
	}
	wg.Wait()

	capacity, enrolled, err := store.Seats(context.Background(), 7)
	require.NoError(t, err)
	assert.LessOrEqual(t, enrolled, capacity)
	assert.Equal(t, 5, enrolled)
}

func TestAdmitDuplicateRejected(t *testing.T) {
	store := newFakeStore()
	store.capacity[1] = 10
	svc := newTestEnrollmentService(store)

	_, err := svc.Admit(context.Background(), 42, 1)
	require.NoError(t, err)

	_, err = svc.Admit(context.Background(), 42, 1)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	_, enrolled, err := store.Seats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled, "rejected duplicate must not change the count")
}

func TestAdmitMissingSection(t *testing.T) {
	svc := newTestEnrollmentService(newFakeStore())

	_, err := svc.Admit(context.Background(), 1, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithdrawFreesSeat(t *testing.T) {
	store := newFakeStore()
	store.capacity[1] = 1
	svc := newTestEnrollmentService(store)

	e, err := svc.Admit(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = svc.Admit(context.Background(), 2, 1)
	assert.ErrorIs(t, err, apperrors.ErrSectionFull)

	require.NoError(t, svc.Withdraw(context.Background(), e.ID, 1))

	_, err = svc.Admit(context.Background(), 2, 1)
	assert.NoError(t, err)
}

func TestWithdrawOwnership(t *testing.T) {
	store := newFakeStore()
	store.capacity[1] = 5
	svc := newTestEnrollmentService(store)

	e, err := svc.Admit(context.Background(), 1, 1)
	require.NoError(t, err)

	err = svc.Withdraw(context.Background(), e.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// ownerID zero skips the ownership check (registrar path).
	assert.NoError(t, svc.Withdraw(context.Background(), e.ID, 0))
}

func TestWithdrawMissingEnrollment(t *testing.T) {
	svc := newTestEnrollmentService(newFakeStore())
	err := svc.Withdraw(context.Background(), 12345, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// seatRecorder captures feed publications.
type seatRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *seatRecorder) Publish(sectionID int64, capacity, enrolled int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf("%d:%d/%d", sectionID, enrolled, capacity))
}

func TestAdmitPublishesSeatCounts(t *testing.T) {
	store := newFakeStore()
	store.capacity[3] = 2
	rec := &seatRecorder{}
	svc := NewEnrollmentService(store, rec, zerolog.Nop())

	_, err := svc.Admit(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"3:1/2"}, rec.events)

	var notFound error
	_, notFound = svc.Admit(context.Background(), 1, 99)
	assert.Error(t, notFound)
	assert.Len(t, rec.events, 1, "failed admissions publish nothing")
}

func TestErrorsDoNotMaskEachOther(t *testing.T) {
	assert.False(t, errors.Is(apperrors.ErrSectionFull, apperrors.ErrAlreadyEnrolled))
	assert.False(t, errors.Is(apperrors.ErrAlreadyEnrolled, apperrors.ErrNotFound))
}
