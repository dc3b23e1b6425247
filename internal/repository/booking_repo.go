package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	PostID          string    `gorm:"column:post_id"`
	ProviderID      string    `gorm:"column:provider_id;index"`
	ClientID        string    `gorm:"column:client_id;index"`
	ScheduledAt     time.Time `gorm:"column:scheduled_at"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	Status          string    `gorm:"column:status"`
	ClientNotes     *string   `gorm:"column:client_notes"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.ClientNotes != nil {
		notes = *m.ClientNotes
	}

	return &domain.Booking{
		ID:              m.ID,
		PostID:          m.PostID,
		ProviderID:      m.ProviderID,
		ClientID:        m.ClientID,
		ScheduledAt:     m.ScheduledAt,
		DurationMinutes: m.DurationMinutes,
		Status:          domain.BookingStatus(m.Status),
		ClientNotes:     notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.ClientNotes != "" {
		v := b.ClientNotes
		notes = &v
	}

	return bookingModel{
		ID:              b.ID,
		PostID:          b.PostID,
		ProviderID:      b.ProviderID,
		ClientID:        b.ClientID,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ClientNotes:     notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateStatusFrom transitions status only when the row still holds the
// expected current status, so a concurrent transition loses cleanly.
// Returns the number of rows changed (0 means the booking moved under us).
func (r *BookingRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.BookingStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	return r.list(ctx, "provider_id = ?", providerID)
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	return r.list(ctx, "client_id = ?", clientID)
}

func (r *BookingRepository) list(ctx context.Context, cond string, args ...interface{}) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("scheduled_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListForProviderOnDate returns pending/confirmed bookings within one day,
// used by the public availability lookup.
func (r *BookingRepository) ListForProviderOnDate(ctx context.Context, providerID string, dayStart, dayEnd time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ? AND scheduled_at >= ? AND scheduled_at <= ? AND status IN ?",
			providerID, dayStart, dayEnd,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Order("scheduled_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
