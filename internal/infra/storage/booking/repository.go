package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArrivalService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с заявками на приезд
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"vehicle_id",
	"customer_id",
	"branch_id",
	"description",
	"requested_time",
	"arrival_window_start",
	"window_minutes",
	"status",
	"service_ids",
	"image_urls",
	"vehicle_plate",
	"vehicle_model",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новую заявку
// Если в контексте передана активная транзакция (через context.Value), использует её
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"vehicle_id",
			"customer_id",
			"branch_id",
			"description",
			"requested_time",
			"arrival_window_start",
			"window_minutes",
			"status",
			"service_ids",
			"image_urls",
			"vehicle_plate",
			"vehicle_model",
		).
		Values(
			b.VehicleID,
			b.CustomerID,
			b.BranchID,
			b.Description,
			b.RequestedTime,
			b.ArrivalWindowStart,
			b.WindowMinutes,
			b.Status,
			pq.Array(b.ServiceIDs),
			pq.Array(b.ImageURLs),
			b.VehiclePlate,
			b.VehicleModel,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка читается с блокировкой (FOR UPDATE) - это точка
// сериализации для переходов статусов одной заявки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// CountActiveByCustomer число активных (pending/accepted) заявок клиента
func (r *Repository) CountActiveByCustomer(ctx context.Context, customerID int64) (int, error) {
	return r.count(ctx, squirrel.And{
		squirrel.Eq{"customer_id": customerID},
		squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)},
	}, "CountActiveByCustomer")
}

// CountActiveByVehicle число активных заявок автомобиля
func (r *Repository) CountActiveByVehicle(ctx context.Context, vehicleID int64) (int, error) {
	return r.count(ctx, squirrel.And{
		squirrel.Eq{"vehicle_id": vehicleID},
		squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)},
	}, "CountActiveByVehicle")
}

// CountByVehicleInRange число заявок автомобиля с окном приезда в [from, to)
// Учитываются все нетерминальные заявки плюс завершенные - отмененные и
// отклоненные день не занимают
func (r *Repository) CountByVehicleInRange(ctx context.Context, vehicleID int64, from, to time.Time) (int, error) {
	return r.count(ctx, squirrel.And{
		squirrel.Eq{"vehicle_id": vehicleID},
		squirrel.GtOrEq{"arrival_window_start": from},
		squirrel.Lt{"arrival_window_start": to},
		squirrel.NotEq{"status": []string{string(domain.StatusCancelled), string(domain.StatusRejected)}},
	}, "CountByVehicleInRange")
}

// ExistsActiveSlotRequest есть ли активная заявка на то же (клиент, автомобиль, филиал, окно)
func (r *Repository) ExistsActiveSlotRequest(ctx context.Context, customerID, vehicleID, branchID int64, windowStart time.Time) (bool, error) {
	count, err := r.count(ctx, squirrel.And{
		squirrel.Eq{"customer_id": customerID},
		squirrel.Eq{"vehicle_id": vehicleID},
		squirrel.Eq{"branch_id": branchID},
		squirrel.Eq{"arrival_window_start": windowStart},
		squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)},
	}, "ExistsActiveSlotRequest")
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountAcceptedInWindow число принятых заявок филиала в окне
// Внутри транзакции строки окна блокируются (FOR UPDATE), чтобы два
// конкурирующих accept не прошли мимо лимита одновременно
func (r *Repository) CountAcceptedInWindow(ctx context.Context, branchID int64, windowStart time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.Eq{"arrival_window_start": windowStart},
		squirrel.Eq{"status": string(domain.StatusAccepted)},
	}

	// COUNT(*) нельзя совместить с FOR UPDATE, поэтому в транзакции
	// выбираем id заблокированных строк и считаем их
	if dbmetrics.IsInTransaction(ctx) {
		query, args, err := psqlbuilder.Select("id").
			From("bookings").
			Where(where).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("%w: CountAcceptedInWindow - build select query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("%w: CountAcceptedInWindow - execute query: %v", ErrExecQuery, err)
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return 0, fmt.Errorf("%w: CountAcceptedInWindow - scan id: %v", ErrScanRow, err)
			}
			count++
		}
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("%w: CountAcceptedInWindow - rows error: %v", ErrScanRow, err)
		}
		return count, nil
	}

	return r.count(ctx, where, "CountAcceptedInWindow")
}

// GetAcceptedInRange получает принятые заявки филиала с окном приезда в [from, to)
// Используется калькулятором доступности для подсчета занятости окон
func (r *Repository) GetAcceptedInRange(ctx context.Context, branchID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.And{
			squirrel.Eq{"branch_id": branchID},
			squirrel.Eq{"status": string(domain.StatusAccepted)},
			squirrel.GtOrEq{"arrival_window_start": from},
			squirrel.Lt{"arrival_window_start": to},
		}).
		OrderBy("arrival_window_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomer получает историю заявок клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("arrival_window_start DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByBranchWithFilter получает заявки филиала с гибкой фильтрацией
// Поддерживает фильтрацию по периоду окна приезда, статусу и включению
// терминальных заявок
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"arrival_window_start": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"arrival_window_start": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.TerminalStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("arrival_window_start ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdateStatusAndWindow обновляет статус вместе с нормализованным окном приезда
// Используется при принятии заявки: окно перезаписывается свежеквантованным значением
func (r *Repository) UpdateStatusAndWindow(ctx context.Context, id int64, status domain.BookingStatus, windowStart time.Time, windowMinutes int) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("arrival_window_start", windowStart).
		Set("window_minutes", windowMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusAndWindow - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatusAndWindow")
}

// Cancel отменяет заявку с указанием причины и инициатора
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_by", cancelledBy).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// count выполняет COUNT(*) с произвольным условием
func (r *Repository) count(ctx context.Context, where squirrel.Sqlizer, op string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrExecQuery, op, err)
	}

	return count, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var serviceIDs pq.Int64Array
	var imageURLs pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.VehicleID,
		&b.CustomerID,
		&b.BranchID,
		&b.Description,
		&b.RequestedTime,
		&b.ArrivalWindowStart,
		&b.WindowMinutes,
		&b.Status,
		&serviceIDs,
		&imageURLs,
		&b.VehiclePlate,
		&b.VehicleModel,
		&b.CancellationReason,
		&b.CancelledBy,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.ServiceIDs = []int64(serviceIDs)
	b.ImageURLs = []string(imageURLs)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс заявок
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
