package closure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inspection-service/internal/logging"
	"inspection-service/internal/metrics"
	"inspection-service/internal/models"
)

// CloseRequest is the inbound closure payload.
type CloseRequest struct {
	OrderNumber int      `json:"orderNumber"`
	Observation string   `json:"observation"`
	ReasonCodes []string `json:"reasonCodes"`
	Comments    []string `json:"comments"`
	Confirm     bool     `json:"confirm"`
}

// Service orchestrates the closure of an inspection order: it validates the
// request, performs the order and seismograph transitions, persists them and
// broadcasts the outcome to the registered notification channels.
type Service struct {
	store    Storage
	session  Session
	notifier Notifier
	logger   *logging.Logger
}

func New(store Storage, session Session, notifier Notifier, logger *logging.Logger) *Service {
	return &Service{store: store, session: session, notifier: notifier, logger: logger}
}

// CloseOrder runs the closure use case. Validation and domain-guard failures
// come back as a human-readable message with a nil error; a non-nil error
// means a configuration or persistence fault and nothing user-facing.
func (s *Service) CloseOrder(ctx context.Context, req CloseRequest) (string, error) {
	operator := s.session.LoggedInEmployee()
	if operator == nil {
		return s.reject("No operator is logged in.")
	}

	order, err := s.store.FindOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return s.reject(fmt.Sprintf("Order %d was not found.", req.OrderNumber))
		}
		return "", err
	}

	if strings.TrimSpace(req.Observation) == "" {
		return s.reject("An observation is required.")
	}
	if !req.Confirm {
		return s.reject("Closure cancelled by the operator.")
	}
	if order.State.IsClosed() {
		return s.reject(fmt.Sprintf("Order %d is already closed.", order.Number))
	}

	closedState, err := s.mustState(ctx, models.ScopeOrder, models.StateClosed)
	if err != nil {
		return "", err
	}

	catalog, err := s.store.ListReasonTypes(ctx)
	if err != nil {
		return "", err
	}

	if len(req.ReasonCodes) == 0 {
		return s.reject("At least one failure reason must be selected.")
	}

	if err := order.Close(req.Observation, closedState); err != nil {
		// The entity guard catches a concurrent closure that slipped past
		// the check above.
		return s.reject(err.Error())
	}

	notice := models.ClosureNotice{
		ID:       uuid.New(),
		ClosedAt: *order.ClosedAt,
		Reasons:  []string{},
		Comments: []string{},
	}

	if sm := order.Station.ActiveSeismograph(); sm != nil {
		if err := s.takeOutOfService(ctx, order.Station, sm, req, catalog, &notice); err != nil {
			return "", err
		}
	}

	if err := s.store.SaveOrder(ctx, order); err != nil {
		return "", err
	}

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return "", err
	}
	notice.Recipients = repairResponsibleEmails(employees)

	// The closure is committed; notification failures stay inside the
	// channels and never fail the result.
	s.notifier.Notify(notice)

	metrics.ClosuresTotal.Inc()
	s.logger.Infof("Order %d closed by %s", order.Number, operator.Email)
	return fmt.Sprintf("Order %d closed. Notifications dispatched.", order.Number), nil
}

// ClosableOrders returns the logged-in operator's completed, not yet closed
// orders. Without an operator the list is empty.
func (s *Service) ClosableOrders(ctx context.Context) ([]*models.Order, error) {
	operator := s.session.LoggedInEmployee()
	if operator == nil {
		return nil, nil
	}
	orders, err := s.store.ListAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	var closable []*models.Order
	for _, o := range orders {
		if o.OwnedBy(operator) && o.IsCompleted() {
			closable = append(closable, o)
		}
	}
	return closable, nil
}

// ReasonTypes lists the failure reason catalog.
func (s *Service) ReasonTypes(ctx context.Context) ([]models.ReasonType, error) {
	return s.store.ListReasonTypes(ctx)
}

// takeOutOfService performs the equipment side of the closure: the linked
// seismograph goes OutOfService, the transition is recorded as an
// instantaneous StateChange carrying the matched failure reasons, and the
// seismograph advances to InRepair.
func (s *Service) takeOutOfService(
	ctx context.Context,
	station *models.Station,
	sm *models.Seismograph,
	req CloseRequest,
	catalog []models.ReasonType,
	notice *models.ClosureNotice,
) error {
	persisted, err := s.store.FindSeismographByIdentifier(ctx, sm.Identifier)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Warnf("Seismograph %s is not persisted, skipping equipment transition", sm.Identifier)
			return nil
		}
		return err
	}

	notice.SeismographID = persisted.NumericID()

	if !persisted.BelongsTo(station) {
		s.logger.Warnf("Seismograph %s does not belong to station %s, skipping equipment transition",
			persisted.Identifier, station.Code)
		return nil
	}

	outOfService, err := s.mustState(ctx, models.ScopeSeismograph, models.StateOutOfService)
	if err != nil {
		return err
	}

	persisted.SetState(outOfService)
	notice.StateName = outOfService.Name

	// The transition is treated as instantaneous; the interval is still
	// recorded for audit.
	change := persisted.BeginStateChange(outOfService)
	change.Finish()

	for _, code := range req.ReasonCodes {
		rt, ok := findReasonType(catalog, code)
		if !ok {
			// Selectors that match no catalog entry are dropped, not fatal.
			s.logger.Debugf("Ignoring unknown reason selector %q", code)
			continue
		}
		comment := commentFor(req, code)
		change.AddReason(models.FailureReason{Type: rt, Comment: comment})
		notice.Reasons = append(notice.Reasons, rt.Code)
		notice.Comments = append(notice.Comments, comment)
	}

	inRepair, err := s.mustState(ctx, models.ScopeSeismograph, models.StateInRepair)
	if err != nil {
		return err
	}
	persisted.SetState(inRepair)

	return s.store.SaveSeismograph(ctx, persisted)
}

func (s *Service) mustState(ctx context.Context, scope, name string) (*models.State, error) {
	st, err := s.store.FindState(ctx, scope, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, missingState(scope, name)
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) reject(message string) (string, error) {
	metrics.ClosureRejectionsTotal.Inc()
	return message, nil
}

func findReasonType(catalog []models.ReasonType, selector string) (models.ReasonType, bool) {
	for _, rt := range catalog {
		if rt.Matches(selector) {
			return rt, true
		}
	}
	return models.ReasonType{}, false
}

// commentFor matches comments to reason codes positionally: the comment for
// a code sits at the first index of that code in the request. Missing
// entries default to empty.
func commentFor(req CloseRequest, code string) string {
	for i, c := range req.ReasonCodes {
		if c == code {
			if i < len(req.Comments) {
				return req.Comments[i]
			}
			return ""
		}
	}
	return ""
}

func repairResponsibleEmails(employees []*models.Employee) []string {
	var mails []string
	for _, e := range employees {
		if e.IsRepairResponsible() {
			mails = append(mails, e.Email)
		}
	}
	return mails
}
