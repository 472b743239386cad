package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
)

// TimetableRepository handles database operations for timetable slots
type TimetableRepository struct {
	db *pgxpool.Pool
}

// NewTimetableRepository creates a new timetable repository
func NewTimetableRepository(db *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{
		db: db,
	}
}

const timetableOverviewSelect = `
	SELECT t.id, t.day, t.start_time, t.end_time, c.name, sub.name
	FROM timetables t
	JOIN classes c ON c.id = t.class_id
	JOIN subjects sub ON sub.id = t.subject_id
`

func scanTimetableOverviewRows(rows pgx.Rows) ([]models.TimetableOverview, error) {
	defer rows.Close()

	var slots []models.TimetableOverview
	for rows.Next() {
		var s models.TimetableOverview
		if err := rows.Scan(&s.ID, &s.Day, &s.StartTime, &s.EndTime, &s.ClassName, &s.SubjectName); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// GetByTeacherID retrieves a teacher's slots ordered by day then start time
func (r *TimetableRepository) GetByTeacherID(ctx context.Context, teacherID int64, limit int) ([]models.TimetableOverview, error) {
	query := timetableOverviewSelect + `
		WHERE t.teacher_id = $1
		ORDER BY t.day, t.start_time
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, teacherID, limit)
	if err != nil {
		return nil, err
	}

	return scanTimetableOverviewRows(rows)
}

// GetByClassID retrieves a class's slots ordered by day then start time
func (r *TimetableRepository) GetByClassID(ctx context.Context, classID int64) ([]models.TimetableOverview, error) {
	query := timetableOverviewSelect + `
		WHERE t.class_id = $1
		ORDER BY t.day, t.start_time
	`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, err
	}

	return scanTimetableOverviewRows(rows)
}
