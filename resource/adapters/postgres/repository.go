package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "resourced/resource/domain/errors"
	"resourced/resource/ports"
)

// Repository is the durable store. The unique index on code is the arbiter
// of racing creates: the losing insert surfaces as ErrCodeConflict.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the resources table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&resourceModel{})
}

func (r *Repository) GetByID(ctx context.Context, id string) (ports.Resource, error) {
	var row resourceModel
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Resource{}, domainerrors.ErrResourceNotFound
		}
		return ports.Resource{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (ports.Resource, error) {
	var row resourceModel
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(code)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Resource{}, domainerrors.ErrResourceNotFound
		}
		return ports.Resource{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&resourceModel{}).
		Where("code = ?", strings.TrimSpace(code)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) List(ctx context.Context) ([]ports.Resource, error) {
	var rows []resourceModel
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListByActive(ctx context.Context, active bool) ([]ports.Resource, error) {
	var rows []resourceModel
	err := r.db.WithContext(ctx).
		Where("active = ?", active).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) Create(ctx context.Context, resource ports.Resource) error {
	row := resourceModelFromEntity(resource)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCodeConflict
		}
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("resource_id = ?", strings.TrimSpace(id)).
		Delete(&resourceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrResourceNotFound
	}
	return nil
}

func toEntities(rows []resourceModel) []ports.Resource {
	items := make([]ports.Resource, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
