package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mscp/internal/domain"
	"mscp/internal/port"
)

type calendarRepo struct {
	db *sqlx.DB
}

// NewCalendarRepo creates a new PostgreSQL-backed CalendarRepository.
func NewCalendarRepo(db *sqlx.DB) port.CalendarRepository {
	return &calendarRepo{db: db}
}

func (r *calendarRepo) CreateYear(ctx context.Context, y *domain.FinancialYear) error {
	y.ID = uuid.New()
	y.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO financial_years (id, name, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		y.ID, y.Name, y.StartDate, y.EndDate, y.CreatedAt)
	if err != nil {
		return fmt.Errorf("calendarRepo.CreateYear: %w", err)
	}
	return nil
}

func (r *calendarRepo) ListYears(ctx context.Context) ([]domain.FinancialYear, error) {
	var out []domain.FinancialYear
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM financial_years ORDER BY start_date DESC")
	if err != nil {
		return nil, fmt.Errorf("calendarRepo.ListYears: %w", err)
	}
	return out, nil
}

func (r *calendarRepo) GetYear(ctx context.Context, id uuid.UUID) (*domain.FinancialYear, error) {
	var y domain.FinancialYear
	err := r.db.GetContext(ctx, &y, "SELECT * FROM financial_years WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("calendarRepo.GetYear: %w", err)
	}
	return &y, nil
}

func (r *calendarRepo) CreateQuarter(ctx context.Context, q *domain.Quarter) error {
	q.ID = uuid.New()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quarters (id, year_id, number, name, report_due_date)
		 VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.YearID, q.Number, q.Name, q.ReportDueDate)
	if err != nil {
		return fmt.Errorf("calendarRepo.CreateQuarter: %w", err)
	}
	return nil
}

func (r *calendarRepo) ListQuartersByYear(ctx context.Context, yearID uuid.UUID) ([]domain.Quarter, error) {
	var out []domain.Quarter
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM quarters WHERE year_id = $1 ORDER BY number", yearID)
	if err != nil {
		return nil, fmt.Errorf("calendarRepo.ListQuartersByYear: %w", err)
	}
	return out, nil
}

func (r *calendarRepo) GetQuarter(ctx context.Context, id uuid.UUID) (*domain.Quarter, error) {
	var q domain.Quarter
	err := r.db.GetContext(ctx, &q, "SELECT * FROM quarters WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("calendarRepo.GetQuarter: %w", err)
	}
	return &q, nil
}

func (r *calendarRepo) ListQuartersDueBetween(ctx context.Context, from, to time.Time) ([]domain.Quarter, error) {
	var out []domain.Quarter
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM quarters WHERE report_due_date BETWEEN $1 AND $2 ORDER BY report_due_date",
		from, to)
	if err != nil {
		return nil, fmt.Errorf("calendarRepo.ListQuartersDueBetween: %w", err)
	}
	return out, nil
}
