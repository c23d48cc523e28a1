package closure_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-service/internal/closure"
	"inspection-service/internal/logging"
	"inspection-service/internal/memdb"
	"inspection-service/internal/models"
)

type captureNotifier struct {
	notices []models.ClosureNotice
}

func (n *captureNotifier) Notify(notice models.ClosureNotice) {
	n.notices = append(n.notices, notice)
}

type fixedSession struct {
	operator *models.Employee
}

func (s *fixedSession) LoggedInEmployee() *models.Employee { return s.operator }

func operatorJohn() *models.Employee {
	return &models.Employee{Email: "john.perez@seismic.net", Name: "John", Surname: "Perez"}
}

func newService(t *testing.T) (*closure.Service, *memdb.Store, *captureNotifier) {
	t.Helper()
	store := memdb.Seeded()
	notifier := &captureNotifier{}
	svc := closure.New(store, &fixedSession{operator: operatorJohn()}, notifier, logging.NewNop())
	return svc, store, notifier
}

func validRequest() closure.CloseRequest {
	return closure.CloseRequest{
		OrderNumber: 1001,
		Observation: "ok",
		ReasonCodes: []string{"1"},
		Comments:    []string{"short circuit"},
		Confirm:     true,
	}
}

func TestCloseOrder_Success(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := newService(t)

	msg, err := svc.CloseOrder(ctx, validRequest())
	require.NoError(t, err)
	assert.Contains(t, msg, "1001")
	assert.Contains(t, msg, "closed")

	// The order is closed with observation and timestamp.
	order, err := store.FindOrderByNumber(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, order.State.IsClosed())
	assert.Equal(t, "ok", order.Observation)
	require.NotNil(t, order.ClosedAt)
	assert.WithinDuration(t, time.Now(), *order.ClosedAt, time.Minute)

	// The linked seismograph went OutOfService then InRepair, with one
	// finished StateChange carrying exactly one matched reason.
	sm, err := store.FindSeismographByIdentifier(ctx, "SISMO-001")
	require.NoError(t, err)
	assert.True(t, sm.State.IsInRepair())
	require.Len(t, sm.Changes, 1)
	change := sm.Changes[0]
	assert.True(t, change.State.IsOutOfService())
	require.NotNil(t, change.EndedAt)
	require.Len(t, change.Reasons, 1)
	assert.Equal(t, "1", change.Reasons[0].Type.Code)
	assert.Equal(t, "short circuit", change.Reasons[0].Comment)

	// Exactly one notice with the expected fan-out data.
	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, 1, notice.SeismographID)
	assert.Equal(t, models.StateOutOfService, notice.StateName)
	assert.Equal(t, []string{"1"}, notice.Reasons)
	assert.Equal(t, []string{"short circuit"}, notice.Comments)
	assert.Equal(t, []string{"marcos.ponce@seismic.net"}, notice.Recipients)
}

func TestCloseOrder_SecondCloseRejected(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := newService(t)

	_, err := svc.CloseOrder(ctx, validRequest())
	require.NoError(t, err)

	msg, err := svc.CloseOrder(ctx, validRequest())
	require.NoError(t, err)
	assert.Contains(t, msg, "already closed")

	// No additional StateChange and no additional notification.
	sm, err := store.FindSeismographByIdentifier(ctx, "SISMO-001")
	require.NoError(t, err)
	assert.Len(t, sm.Changes, 1)
	assert.Len(t, notifier.notices, 1)
}

func TestCloseOrder_Validation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*closure.CloseRequest)
		message string
	}{
		{
			name:    "unknown order",
			mutate:  func(r *closure.CloseRequest) { r.OrderNumber = 9999 },
			message: "not found",
		},
		{
			name:    "blank observation",
			mutate:  func(r *closure.CloseRequest) { r.Observation = "   " },
			message: "observation",
		},
		{
			name:    "unconfirmed",
			mutate:  func(r *closure.CloseRequest) { r.Confirm = false },
			message: "cancelled",
		},
		{
			name:    "no reasons",
			mutate:  func(r *closure.CloseRequest) { r.ReasonCodes = nil },
			message: "failure reason",
		},
		{
			name:    "already closed order",
			mutate:  func(r *closure.CloseRequest) { r.OrderNumber = 1002 },
			message: "already closed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, notifier := newService(t)

			req := validRequest()
			tc.mutate(&req)

			msg, err := svc.CloseOrder(ctx, req)
			require.NoError(t, err)
			assert.Containsf(t, msg, tc.message, "unexpected rejection message %q", msg)

			// Rejections perform no writes and trigger no notification.
			order, err := store.FindOrderByNumber(ctx, 1001)
			require.NoError(t, err)
			assert.True(t, order.State.IsCompleted())

			sm, err := store.FindSeismographByIdentifier(ctx, "SISMO-001")
			require.NoError(t, err)
			assert.Empty(t, sm.Changes)
			assert.Empty(t, notifier.notices)
		})
	}
}

func TestCloseOrder_NoOperator(t *testing.T) {
	ctx := context.Background()
	store := memdb.Seeded()
	notifier := &captureNotifier{}
	svc := closure.New(store, &fixedSession{}, notifier, logging.NewNop())

	msg, err := svc.CloseOrder(ctx, validRequest())
	require.NoError(t, err)
	assert.Contains(t, msg, "No operator")
	assert.Empty(t, notifier.notices)
}

func TestCloseOrder_UnknownReasonCodesAreDropped(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := newService(t)

	req := validRequest()
	req.ReasonCodes = []string{"1", "99", "2"}
	req.Comments = []string{"short circuit", "ignored", "no signal"}

	msg, err := svc.CloseOrder(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, msg, "1001")

	// The recorded reasons keep the request's positional pairing and drop
	// the unknown code silently.
	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, []string{"1", "2"}, notice.Reasons)
	assert.Equal(t, []string{"short circuit", "no signal"}, notice.Comments)

	sm, err := store.FindSeismographByIdentifier(ctx, "SISMO-001")
	require.NoError(t, err)
	require.Len(t, sm.Changes, 1)
	assert.Len(t, sm.Changes[0].Reasons, 2)
}

func TestCloseOrder_CommentsShorterThanReasons(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newService(t)

	req := validRequest()
	req.ReasonCodes = []string{"1", "2"}
	req.Comments = []string{"short circuit"}

	_, err := svc.CloseOrder(ctx, req)
	require.NoError(t, err)

	require.Len(t, notifier.notices, 1)
	assert.Equal(t, []string{"1", "2"}, notifier.notices[0].Reasons)
	assert.Equal(t, []string{"short circuit", ""}, notifier.notices[0].Comments)
}

func TestCloseOrder_MissingCatalogStateIsFatal(t *testing.T) {
	ctx := context.Background()

	t.Run("closed state for orders", func(t *testing.T) {
		svc, store, notifier := newService(t)
		store.RemoveState(models.ScopeOrder, models.StateClosed)

		_, err := svc.CloseOrder(ctx, validRequest())
		require.Error(t, err)
		assert.True(t, errors.Is(err, closure.ErrMissingState))
		assert.Empty(t, notifier.notices)
	})

	t.Run("out-of-service state for seismographs", func(t *testing.T) {
		svc, store, notifier := newService(t)
		store.RemoveState(models.ScopeSeismograph, models.StateOutOfService)

		_, err := svc.CloseOrder(ctx, validRequest())
		require.Error(t, err)
		assert.True(t, errors.Is(err, closure.ErrMissingState))
		assert.Empty(t, notifier.notices)
	})

	t.Run("in-repair state for seismographs", func(t *testing.T) {
		svc, store, notifier := newService(t)
		store.RemoveState(models.ScopeSeismograph, models.StateInRepair)

		_, err := svc.CloseOrder(ctx, validRequest())
		require.Error(t, err)
		assert.True(t, errors.Is(err, closure.ErrMissingState))
		assert.Empty(t, notifier.notices)
	})
}

func TestClosableOrders(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	orders, err := svc.ClosableOrders(ctx)
	require.NoError(t, err)

	// Only order 1001 is completed and owned by the operator: 1002 is
	// closed, 1003 belongs to someone else, 1004 is pending.
	require.Len(t, orders, 1)
	assert.Equal(t, 1001, orders[0].Number)
}

func TestClosableOrders_NoOperator(t *testing.T) {
	ctx := context.Background()
	svc := closure.New(memdb.Seeded(), &fixedSession{}, &captureNotifier{}, logging.NewNop())

	orders, err := svc.ClosableOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestReasonTypes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	reasons, err := svc.ReasonTypes(ctx)
	require.NoError(t, err)
	require.Len(t, reasons, 3)
	assert.Equal(t, "1", reasons[0].Code)
	assert.Equal(t, "Electrical failure", reasons[0].Description)
}
