package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
)

// ExamRepository handles database operations for exams
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
	}
}

const examOverviewSelect = `
	SELECT e.id, e.name, e.date, c.name, sub.name
	FROM exams e
	JOIN classes c ON c.id = e.class_id
	JOIN subjects sub ON sub.id = e.subject_id
`

func scanExamOverviewRows(rows pgx.Rows) ([]models.ExamOverview, error) {
	defer rows.Close()

	var exams []models.ExamOverview
	for rows.Next() {
		var e models.ExamOverview
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.ClassName, &e.SubjectName); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exams, nil
}

// GetUpcomingByClassIDs retrieves exams with date >= after for the given
// classes, soonest first.
func (r *ExamRepository) GetUpcomingByClassIDs(ctx context.Context, classIDs []int64, after time.Time, limit int) ([]models.ExamOverview, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}

	query := examOverviewSelect + `
		WHERE e.class_id = ANY($1) AND e.date >= $2
		ORDER BY e.date ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, classIDs, after, limit)
	if err != nil {
		return nil, err
	}

	return scanExamOverviewRows(rows)
}

// Exists checks if an exam exists by ID
func (r *ExamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM exams WHERE id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking exam existence: %w", err)
	}

	return exists, nil
}
