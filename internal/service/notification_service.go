package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Alert lookback windows. A same-typed alert for the same medicine inside the
// window suppresses re-insertion; after the window it is re-created, so open
// issues resurface on every scan.
const (
	stockAlertWindow  = 24 * time.Hour
	expiryAlertWindow = 7 * 24 * time.Hour

	expiringSoonDays = 30
	criticalDays     = 7
)

type NotificationService interface {
	// Generate scans the full inventory and inserts any alerts not already
	// present within their lookback window. Critical alerts additionally
	// enqueue an email to the configured alert address.
	Generate(ctx context.Context) (*dto.GenerateResponse, error)
	List(ctx context.Context, filter dto.NotificationFilter) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error)
	Summary(ctx context.Context) (*dto.NotificationSummaryResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ClearRead(ctx context.Context) (int64, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	medicineRepo repository.MedicineRepository
	queue        worker.Queue
	alertEmail   string
}

func NewNotificationService(
	repo repository.NotificationRepository,
	medicineRepo repository.MedicineRepository,
	queue worker.Queue,
	alertEmail string,
) NotificationService {
	return &notificationService{
		repo:         repo,
		medicineRepo: medicineRepo,
		queue:        queue,
		alertEmail:   alertEmail,
	}
}

func (s *notificationService) Generate(ctx context.Context) (*dto.GenerateResponse, error) {
	meds, err := s.medicineRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created := 0
	for i := range meds {
		med := &meds[i]

		if n, err := s.stockAlert(ctx, med, now); err != nil {
			return nil, err
		} else {
			created += n
		}
		if n, err := s.expiryAlert(ctx, med, now); err != nil {
			return nil, err
		} else {
			created += n
		}
	}

	return &dto.GenerateResponse{
		Message:              fmt.Sprintf("Generated %d notifications", created),
		NotificationsCreated: created,
	}, nil
}

func (s *notificationService) stockAlert(ctx context.Context, med *model.Medicine, now time.Time) (int, error) {
	var n model.Notification
	switch {
	case med.Quantity == 0:
		n = model.Notification{
			Type:     "out_of_stock",
			Priority: "critical",
			Title:    "Out of Stock",
			Message:  fmt.Sprintf("%s (batch %s) is out of stock", med.Name, med.BatchNo),
		}
	case med.Quantity < med.ReorderLevel:
		n = model.Notification{
			Type:     "low_stock",
			Priority: "warning",
			Title:    "Low Stock",
			Message:  fmt.Sprintf("%s is down to %d units (reorder level %d)", med.Name, med.Quantity, med.ReorderLevel),
		}
	default:
		return 0, nil
	}
	return s.insertIfStale(ctx, med, n, now.Add(-stockAlertWindow))
}

// expiryAlert skips medicines whose expiry date does not parse; a single bad
// row must not abort the scan.
func (s *notificationService) expiryAlert(ctx context.Context, med *model.Medicine, now time.Time) (int, error) {
	expiry, err := time.Parse("2006-01-02", med.ExpiryDate)
	if err != nil {
		log.Warn().
			Str("medicine", med.Name).
			Str("expiry_date", med.ExpiryDate).
			Msg("unparseable expiry date, skipping expiry alert")
		return 0, nil
	}

	daysLeft := int(expiry.Sub(startOfDay(now)).Hours() / 24)
	var n model.Notification
	switch {
	case daysLeft < 0:
		n = model.Notification{
			Type:     "expired",
			Priority: "critical",
			Title:    "Medicine Expired",
			Message:  fmt.Sprintf("%s (batch %s) expired on %s", med.Name, med.BatchNo, med.ExpiryDate),
		}
	case daysLeft <= expiringSoonDays:
		priority := "warning"
		if daysLeft <= criticalDays {
			priority = "critical"
		}
		n = model.Notification{
			Type:     "expiring_soon",
			Priority: priority,
			Title:    "Expiring Soon",
			Message:  fmt.Sprintf("%s (batch %s) expires in %d days", med.Name, med.BatchNo, daysLeft),
		}
	default:
		return 0, nil
	}
	return s.insertIfStale(ctx, med, n, now.Add(-expiryAlertWindow))
}

func (s *notificationService) insertIfStale(ctx context.Context, med *model.Medicine, n model.Notification, cutoff time.Time) (int, error) {
	exists, err := s.repo.ExistsSince(ctx, n.Type, med.ID, cutoff)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}
	n.MedicineID = med.ID
	n.MedicineName = med.Name
	if err := s.repo.Create(ctx, &n); err != nil {
		return 0, err
	}
	if n.Priority == "critical" {
		s.enqueueAlertEmail(ctx, n)
	}
	return 1, nil
}

// enqueueAlertEmail is best effort: a queue failure is logged, never surfaced.
func (s *notificationService) enqueueAlertEmail(ctx context.Context, n model.Notification) {
	if s.queue == nil || s.alertEmail == "" {
		return
	}
	task, err := worker.NewTask(worker.TaskSendEmail, worker.EmailPayload{
		To:      []string{s.alertEmail},
		Subject: fmt.Sprintf("[Pharmacy Alert] %s: %s", n.Title, n.MedicineName),
		Body:    n.Message,
	})
	if err != nil {
		log.Error().Err(err).Msg("build alert email task")
		return
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		log.Error().Err(err).Str("notification_type", n.Type).Msg("enqueue alert email")
	}
}

func (s *notificationService) List(ctx context.Context, filter dto.NotificationFilter) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, *notificationToResponse(&notifications[i]))
	}
	return out, nil
}

func (s *notificationService) UnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error) {
	n, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{UnreadCount: n}, nil
}

func (s *notificationService) Summary(ctx context.Context) (*dto.NotificationSummaryResponse, error) {
	byPriority := make(map[string]int64)
	for _, p := range []string{"critical", "warning", "info"} {
		n, err := s.repo.CountUnreadBy(ctx, "priority", p)
		if err != nil {
			return nil, err
		}
		byPriority[p] = n
	}

	byType := make(map[string]int64)
	var total int64
	for _, t := range []string{"low_stock", "out_of_stock", "expired", "expiring_soon"} {
		n, err := s.repo.CountUnreadBy(ctx, "type", t)
		if err != nil {
			return nil, err
		}
		byType[t] = n
		total += n
	}

	return &dto.NotificationSummaryResponse{
		ByPriority:  byPriority,
		ByType:      byType,
		TotalUnread: total,
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("notification: %w", apierror.ErrNotFound)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("notification: %w", apierror.ErrNotFound)
	}
	return nil
}

func (s *notificationService) ClearRead(ctx context.Context) (int64, error) {
	return s.repo.DeleteRead(ctx)
}

func notificationToResponse(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:           n.ID.String(),
		Type:         n.Type,
		Priority:     n.Priority,
		Title:        n.Title,
		Message:      n.Message,
		MedicineID:   n.MedicineID.String(),
		MedicineName: n.MedicineName,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
	resp.ReadAt = formatTimePtr(n.ReadAt)
	return resp
}
