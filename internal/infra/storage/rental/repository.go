package rental

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/dbmetrics"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"request_id",
	"apartment_id",
	"requester_id",
	"owner_id",
	"room_count",
	"check_in",
	"check_out",
	"final_price",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с арендами.
// Строки этой таблицы со статусом из domain.BlockingRentalStatuses образуют
// леджер доступности квартиры.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аренд
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую аренду (минтится при принятии заявки)
func (r *Repository) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rentals").
		Columns(
			"request_id",
			"apartment_id",
			"requester_id",
			"owner_id",
			"room_count",
			"check_in",
			"check_out",
			"final_price",
			"status",
		).
		Values(
			rental.RequestID,
			rental.ApartmentID,
			rental.RequesterID,
			rental.OwnerID,
			rental.RoomCount,
			rental.Interval.CheckIn,
			rental.Interval.CheckOut,
			rental.FinalPrice,
			rental.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rental.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rental.CreatedAt = createdAt.Time
	rental.UpdatedAt = updatedAt.Time

	return rental, nil
}

// GetByID получает аренду по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("rentals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByRequestID получает аренду, созданную из указанной заявки
func (r *Repository) GetByRequestID(ctx context.Context, requestID int64) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("rentals").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequestID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByRequestID")
}

// GetBlockingIntervals получает интервалы леджера доступности квартиры:
// аренды в статусах active и completed. Внутри транзакции строки блокируются
// FOR UPDATE — это критическая секция check-then-insert при принятии заявки.
func (r *Repository) GetBlockingIntervals(ctx context.Context, apartmentID int64) ([]domain.StayInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.BlockingRentalStatuses))
	for i, s := range domain.BlockingRentalStatuses {
		blockingStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("check_in", "check_out").
		From("rentals").
		Where(squirrel.Eq{"apartment_id": apartmentID, "status": blockingStatuses}).
		OrderBy("check_in ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.StayInterval, 0)
	for rows.Next() {
		var iv domain.StayInterval
		if err := rows.Scan(&iv.CheckIn, &iv.CheckOut); err != nil {
			return nil, fmt.Errorf("%w: GetBlockingIntervals - scan interval: %v", ErrScanRow, err)
		}
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockingIntervals - iterate rows: %v", ErrExecQuery, err)
	}

	return intervals, nil
}

// GetByRequester получает аренды пользователя
func (r *Repository) GetByRequester(ctx context.Context, requesterID int64) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("rentals").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("check_in DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// Cancel отменяет активную аренду, освобождая её интервал в леджере.
// Повторная отмена уже отменённой аренды — no-op: release идемпотентен.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.RentalStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rentals").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.RentalStatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrRentalNotFound
		}
		// Аренда уже не active: отмена идемпотентна, конфликт не поднимаем
		return nil
	}

	return nil
}

// CompleteExpired переводит в completed активные аренды с истекшим check-out
// и возвращает их для уведомления. Интервалы остаются в леджере как
// исторический факт.
func (r *Repository) CompleteExpired(ctx context.Context, now time.Time) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rentals").
		Set("status", domain.RentalStatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.RentalStatusActive}).
		Where(squirrel.LtOrEq{"check_out": now}).
		Suffix("RETURNING " + joinColumns(selectColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CompleteExpired - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Rental, error) {
	var rental domain.Rental
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rental.ID,
		&rental.RequestID,
		&rental.ApartmentID,
		&rental.RequesterID,
		&rental.OwnerID,
		&rental.RoomCount,
		&rental.Interval.CheckIn,
		&rental.Interval.CheckOut,
		&rental.FinalPrice,
		&rental.Status,
		&rental.CancellationReason,
		&rental.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRentalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan rental: %v", ErrScanRow, op, err)
	}

	rental.CreatedAt = createdAt.Time
	rental.UpdatedAt = updatedAt.Time

	return &rental, nil
}

func (r *Repository) scanMany(rows *sql.Rows) ([]*domain.Rental, error) {
	rentals := make([]*domain.Rental, 0)

	for rows.Next() {
		var rental domain.Rental
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rental.ID,
			&rental.RequestID,
			&rental.ApartmentID,
			&rental.RequesterID,
			&rental.OwnerID,
			&rental.RoomCount,
			&rental.Interval.CheckIn,
			&rental.Interval.CheckOut,
			&rental.FinalPrice,
			&rental.Status,
			&rental.CancellationReason,
			&rental.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan rental: %v", ErrScanRow, err)
		}

		rental.CreatedAt = createdAt.Time
		rental.UpdatedAt = updatedAt.Time

		rentals = append(rentals, &rental)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrExecQuery, err)
	}

	return rentals, nil
}
