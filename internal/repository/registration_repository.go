package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galsan/jungang-heights-api/internal/domain"
)

// ListFilter captures admin list parameters. All present filters are
// AND-combined.
type ListFilter struct {
	Search       string
	Status       string
	InterestType string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// Sortable columns. Anything else falls back to created_at so a
// caller-supplied sort column never reaches the SQL text unchecked.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"phone":         "phone",
	"interest_type": "interest_type",
	"status":        "status",
	"created_at":    "created_at",
}

// SortColumn maps a requested sort key to a safe column name, falling back
// to created_at.
func SortColumn(requested string) string {
	if col, ok := sortColumns[requested]; ok {
		return col
	}
	return "created_at"
}

// SortDirection normalizes the requested order to ASC or DESC, defaulting
// to DESC.
func SortDirection(requested string) string {
	if strings.EqualFold(requested, "asc") {
		return "ASC"
	}
	return "DESC"
}

// RegistrationRepository encapsulates lead persistence.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Registration, int64, error)
	ListAll(ctx context.Context) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, startOfDay, weekAgo time.Time) (*domain.Stats, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository instantiates repository.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (name, phone, interest_type, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		reg.Name,
		reg.Phone,
		reg.InterestType,
		reg.Message,
		reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *registrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	const query = `
        SELECT id, name, phone, interest_type, message, status, created_at, updated_at
        FROM registrations WHERE id=$1`
	var reg domain.Registration
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.Name,
		&reg.Phone,
		&reg.InterestType,
		&reg.Message,
		&reg.Status,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns one page of matching rows plus the total count under the same
// predicate. Count and fetch are separate statements; a concurrent write can
// make them reflect slightly different snapshots, which is accepted.
func (r *registrationRepository) List(ctx context.Context, filter ListFilter) ([]domain.Registration, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if strings.TrimSpace(filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(phone) LIKE %s)", placeholder, placeholder))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if strings.TrimSpace(filter.InterestType) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(filter.InterestType))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(interest_type) LIKE $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM registrations WHERE %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := SortColumn(filter.SortBy)
	order := SortDirection(filter.SortOrder)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT id, name, phone, interest_type, message, status, created_at, updated_at
        FROM registrations WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		where, sortBy, order, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanRegistrations(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ListAll returns every row ordered newest first, for CSV export.
func (r *registrationRepository) ListAll(ctx context.Context) ([]domain.Registration, error) {
	const query = `
        SELECT id, name, phone, interest_type, message, status, created_at, updated_at
        FROM registrations ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, updatedAt time.Time) error {
	const query = `UPDATE registrations SET status=$1, updated_at=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the row. Deleting an id that is already gone is not an
// error; the operation is idempotent.
func (r *registrationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id=$1`, id)
	return err
}

// Stats recomputes the six dashboard counts from the current table state.
func (r *registrationRepository) Stats(ctx context.Context, startOfDay, weekAgo time.Time) (*domain.Stats, error) {
	stats := &domain.Stats{}

	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.Total, `SELECT COUNT(*) FROM registrations`, nil},
		{&stats.New, `SELECT COUNT(*) FROM registrations WHERE status=$1`, []any{domain.StatusNew}},
		{&stats.Contacted, `SELECT COUNT(*) FROM registrations WHERE status=$1`, []any{domain.StatusContacted}},
		{&stats.Completed, `SELECT COUNT(*) FROM registrations WHERE status=$1`, []any{domain.StatusCompleted}},
		{&stats.TodayCount, `SELECT COUNT(*) FROM registrations WHERE created_at >= $1`, []any{startOfDay}},
		{&stats.WeekCount, `SELECT COUNT(*) FROM registrations WHERE created_at >= $1`, []any{weekAgo}},
	}

	for _, c := range counts {
		if err := r.pool.QueryRow(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func scanRegistrations(rows pgx.Rows) ([]domain.Registration, error) {
	var result []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.Name,
			&reg.Phone,
			&reg.InterestType,
			&reg.Message,
			&reg.Status,
			&reg.CreatedAt,
			&reg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
