package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/dbmetrics"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"apartment_id",
	"requester_id",
	"owner_id",
	"room_count",
	"check_in",
	"check_out",
	"status",
	"quote_nights",
	"quote_base_cost_per_room",
	"quote_base_cost_total",
	"quote_daily_utility",
	"quote_total_utility",
	"quote_discount_percent",
	"quote_discount_amount",
	"quote_final_price",
	"quote_final_price_no_discount",
	"decline_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку в статусе pending.
// Квота (quote) денормализуется в строку заявки: это снимок расчёта на
// момент подачи, он не пересчитывается при изменении цен квартиры.
func (r *Repository) Create(ctx context.Context, req *domain.ReservationRequest) (*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_requests").
		Columns(
			"apartment_id",
			"requester_id",
			"owner_id",
			"room_count",
			"check_in",
			"check_out",
			"status",
			"quote_nights",
			"quote_base_cost_per_room",
			"quote_base_cost_total",
			"quote_daily_utility",
			"quote_total_utility",
			"quote_discount_percent",
			"quote_discount_amount",
			"quote_final_price",
			"quote_final_price_no_discount",
		).
		Values(
			req.ApartmentID,
			req.RequesterID,
			req.OwnerID,
			req.RoomCount,
			req.Interval.CheckIn,
			req.Interval.CheckOut,
			req.State,
			req.Quote.Nights,
			req.Quote.BaseCostPerRoom,
			req.Quote.BaseCostAllRooms,
			req.Quote.DailyUtility,
			req.Quote.TotalUtility,
			req.Quote.DiscountPercent,
			req.Quote.DiscountAmount,
			req.Quote.FinalWithDiscount,
			req.Quote.FinalWithoutDiscount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("reservation_requests").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку заявки: accept и cancel меняют
	// её статус после проверки леджера
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByRequester получает заявки пользователя, опционально фильтруя по статусу
func (r *Repository) GetByRequester(ctx context.Context, requesterID int64, state *domain.ReservationState) ([]*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("reservation_requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("check_in DESC, id DESC")

	if state != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *state})
	}

	query, args, err := selectBuilder.ToSql()
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

// GetByApartmentWithFilter получает заявки по квартире с гибкой фильтрацией:
// по статусу, по периоду check-in и по включению терминальных заявок
func (r *Repository) GetByApartmentWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("reservation_requests").
		Where(squirrel.Eq{"apartment_id": filter.ApartmentID}).
		OrderBy("check_in ASC, id ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"check_in": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"check_in": *filter.To})
	}

	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.State})
	} else if !filter.IncludeTerminal {
		terminalStates := make([]string, len(domain.TerminalStates))
		for i, s := range domain.TerminalStates {
			terminalStates[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStates})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByApartmentWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByApartmentWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// UpdateState выполняет guarded-переход заявки из статуса from в статус to.
// Если заявка уже не в статусе from, возвращает ErrStateConflict:
// терминальные статусы неизменяемы, повторный переход не выполняется.
func (r *Repository) UpdateState(ctx context.Context, id int64, from, to domain.ReservationState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_requests").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, id, "UpdateState")
}

// Decline переводит pending-заявку в declined с указанием причины
func (r *Repository) Decline(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_requests").
		Set("status", domain.StateDeclined).
		Set("decline_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatePending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Decline - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, id, "Decline")
}

// Cancel переводит заявку в указанный cancelled-статус с фиксацией времени отмены
func (r *Repository) Cancel(ctx context.Context, id int64, from, to domain.ReservationState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_requests").
		Set("status", to).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, id, "Cancel")
}

// execGuarded выполняет guarded UPDATE и различает "не найдена" и "не в том статусе"
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, id int64, op string) error {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}

	if affected == 0 {
		// Либо заявки нет, либо она уже не в ожидаемом статусе
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrReservationNotFound
		}
		return ErrStateConflict
	}

	return nil
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.ReservationRequest, error) {
	var req domain.ReservationRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.ApartmentID,
		&req.RequesterID,
		&req.OwnerID,
		&req.RoomCount,
		&req.Interval.CheckIn,
		&req.Interval.CheckOut,
		&req.State,
		&req.Quote.Nights,
		&req.Quote.BaseCostPerRoom,
		&req.Quote.BaseCostAllRooms,
		&req.Quote.DailyUtility,
		&req.Quote.TotalUtility,
		&req.Quote.DiscountPercent,
		&req.Quote.DiscountAmount,
		&req.Quote.FinalWithDiscount,
		&req.Quote.FinalWithoutDiscount,
		&req.DeclineReason,
		&req.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func (r *Repository) scanMany(rows *sql.Rows) ([]*domain.ReservationRequest, error) {
	requests := make([]*domain.ReservationRequest, 0)

	for rows.Next() {
		var req domain.ReservationRequest
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&req.ID,
			&req.ApartmentID,
			&req.RequesterID,
			&req.OwnerID,
			&req.RoomCount,
			&req.Interval.CheckIn,
			&req.Interval.CheckOut,
			&req.State,
			&req.Quote.Nights,
			&req.Quote.BaseCostPerRoom,
			&req.Quote.BaseCostAllRooms,
			&req.Quote.DailyUtility,
			&req.Quote.TotalUtility,
			&req.Quote.DiscountPercent,
			&req.Quote.DiscountAmount,
			&req.Quote.FinalWithDiscount,
			&req.Quote.FinalWithoutDiscount,
			&req.DeclineReason,
			&req.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan reservation: %v", ErrScanRow, err)
		}

		req.CreatedAt = createdAt.Time
		req.UpdatedAt = updatedAt.Time

		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrExecQuery, err)
	}

	return requests, nil
}
