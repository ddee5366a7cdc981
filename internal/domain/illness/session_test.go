package illness

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_HappyPath(t *testing.T) {
	a := &testAssistant{translation: "cough", diagnosis: "Possible cold.\nThai: หวัด\nEnglish: Cold"}
	svc, repo := newTestService(a)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, "owner-1", milo)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, sess.State)

	sess, err = svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "ไอ", Temperature: "39"})
	require.NoError(t, err)
	assert.Equal(t, StateSymptomsEntered, sess.State)

	sess, err = svc.UpdateTreatment("owner-1", sess.ID, " rest ")
	require.NoError(t, err)
	assert.Equal(t, "rest", sess.Treatment)

	sess, err = svc.Diagnose(ctx, "owner-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateDiagnosisReceived, sess.State)
	assert.Equal(t, a.diagnosis, sess.Diagnosis)

	// nada se escribió antes de guardar
	assert.Empty(t, repo.items)

	sess, err = svc.Save(ctx, "owner-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSaved, sess.State)
	require.NotNil(t, sess.Record)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "rest", repo.items[0].Treatment)

	name, pdf, err := svc.SessionReport(ctx, "owner-1", sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, name)
	assert.NotEmpty(t, pdf)

	sess, err = svc.GetSession("owner-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateReportGenerated, sess.State)

	// ya guardado: no se puede cancelar ni editar
	assert.ErrorIs(t, svc.CancelSession("owner-1", sess.ID), ErrInvalidTransition)
	_, err = svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "x"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSession_DiagnosisFailureReturnsToSymptoms(t *testing.T) {
	a := &testAssistant{diagnosis: ""}
	svc, _ := newTestService(a)

	sess, _ := svc.OpenSession(context.Background(), "owner-1", milo)
	_, err := svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "x", Temperature: "39"})
	require.NoError(t, err)

	sess, err = svc.Diagnose(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrDiagnosisUnavailable)
	assert.Equal(t, StateSymptomsEntered, sess.State)

	_, err = svc.Save(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrIncompleteRecord)
}

func TestSession_DiagnoseWithoutObservation(t *testing.T) {
	a := &testAssistant{diagnosis: "d"}
	svc, _ := newTestService(a)

	sess, _ := svc.OpenSession(context.Background(), "owner-1", milo)
	sess, err := svc.Diagnose(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrObservationRequired)
	assert.Equal(t, StateIdle, sess.State)
	assert.Empty(t, a.requests)
}

func TestSession_ReentryWhileBusy(t *testing.T) {
	a := &testAssistant{diagnosis: "Thai: x\nEnglish: y", block: make(chan struct{})}
	svc, _ := newTestService(a)

	sess, _ := svc.OpenSession(context.Background(), "owner-1", milo)
	_, err := svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "x", Temperature: "39"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Diagnose(context.Background(), "owner-1", sess.ID)
	}()

	require.Eventually(t, func() bool {
		cur, err := svc.GetSession("owner-1", sess.ID)
		return err == nil && cur.State == StateDiagnosisRequested
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Diagnose(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrSessionBusy)
	_, err = svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "y"})
	assert.ErrorIs(t, err, ErrSessionBusy)

	close(a.block)
	wg.Wait()
	require.NoError(t, firstErr)

	cur, err := svc.GetSession("owner-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateDiagnosisReceived, cur.State)
	assert.Len(t, a.requests, 1)
}

func diagnosedSession(t *testing.T, svc *Service) Session {
	t.Helper()
	sess, err := svc.OpenSession(context.Background(), "owner-1", milo)
	require.NoError(t, err)
	_, err = svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "x", Temperature: "39"})
	require.NoError(t, err)
	sess, err = svc.Diagnose(context.Background(), "owner-1", sess.ID)
	require.NoError(t, err)
	return sess
}

func TestSession_ConcurrentSaveWritesOnce(t *testing.T) {
	svc, repo := newTestService(&testAssistant{diagnosis: "Thai: x\nEnglish: y"})
	sess := diagnosedSession(t, svc)
	repo.block = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Save(context.Background(), "owner-1", sess.ID)
	}()

	require.Eventually(t, func() bool {
		cur, err := svc.GetSession("owner-1", sess.ID)
		return err == nil && cur.State == StateSaving
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Save(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrSessionBusy)
	assert.ErrorIs(t, svc.CancelSession("owner-1", sess.ID), ErrSessionBusy)
	_, err = svc.UpdateTreatment("owner-1", sess.ID, "rest")
	assert.ErrorIs(t, err, ErrSessionBusy)

	close(repo.block)
	wg.Wait()
	require.NoError(t, firstErr)

	cur, err := svc.GetSession("owner-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSaved, cur.State)
	assert.Len(t, repo.items, 1)
}

func TestSession_SaveFailureKeepsDiagnosis(t *testing.T) {
	svc, repo := newTestService(&testAssistant{diagnosis: "Thai: x\nEnglish: y"})
	sess := diagnosedSession(t, svc)

	repo.createErr = ErrStoreUnavailable
	cur, err := svc.Save(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, StateDiagnosisReceived, cur.State)
	assert.Equal(t, "Thai: x\nEnglish: y", cur.Diagnosis)
	assert.Empty(t, repo.items)

	repo.createErr = nil
	cur, err = svc.Save(context.Background(), "owner-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSaved, cur.State)
	assert.Len(t, repo.items, 1)
}

func TestSession_CancelDiscards(t *testing.T) {
	svc, repo := newTestService(&testAssistant{diagnosis: "d"})

	sess, _ := svc.OpenSession(context.Background(), "owner-1", milo)
	_, err := svc.UpdateObservation("owner-1", sess.ID, Observation{Symptoms: "x", Temperature: "39"})
	require.NoError(t, err)

	require.NoError(t, svc.CancelSession("owner-1", sess.ID))
	_, err = svc.GetSession("owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, repo.items)
}

func TestSession_OwnedByCaller(t *testing.T) {
	svc, _ := newTestService(&testAssistant{})

	sess, err := svc.OpenSession(context.Background(), "vet-0001", milo)
	require.NoError(t, err)

	_, err = svc.GetSession("owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.CancelSession("owner-1", sess.ID), ErrSessionNotFound)
}

func TestSession_ReportBeforeSave(t *testing.T) {
	svc, _ := newTestService(&testAssistant{})
	sess, _ := svc.OpenSession(context.Background(), "owner-1", milo)

	_, _, err := svc.SessionReport(context.Background(), "owner-1", sess.ID)
	assert.ErrorIs(t, err, ErrIncompleteRecord)
}

func TestSessionStore_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	st := NewSessionStore(time.Hour, WithSessionClock(func() time.Time { return now }))

	a := st.Create("owner-1", milo)
	b := st.Create("owner-1", milo)

	now = now.Add(50 * time.Minute)
	_, err := st.Update(b.ID, "owner-1", func(s *Session) error { return nil })
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, err = st.Get(a.ID, "owner-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get(b.ID, "owner-1")
	assert.NoError(t, err)

	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 1, st.Len())
}

func TestSessionStore_RunStopsOnCancel(t *testing.T) {
	st := NewSessionStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- st.Run(ctx, time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestSession_FailedUpdateLeavesStateIntact(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := st.Create("owner-1", milo)

	_, err := st.Update(s.ID, "owner-1", func(cur *Session) error {
		cur.Diagnosis = "should not stick"
		return ErrInvalidTransition
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := st.Get(s.ID, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, got.Diagnosis)
}
