package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) ports.EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryEvent := `
		INSERT INTO events (id, title, additional_info, event_date, start_datetime, end_datetime, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, queryEvent,
		event.ID, event.Title, event.AdditionalInfo, event.EventDate,
		event.StartDateTime, event.EndDateTime, event.Status, event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if err := insertQuestions(ctx, tx, event.Questions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	queryEvent := `
		SELECT e.id, e.title, COALESCE(e.additional_info, ''), e.event_date,
		       e.start_datetime, e.end_datetime, e.status, e.created_by, e.created_at,
		       COALESCE(rc.total, 0)
		FROM events e
		LEFT JOIN (
			SELECT event_id, COUNT(*) AS total
			FROM event_responses
			GROUP BY event_id
		) rc ON rc.event_id = e.id
		WHERE e.id = $1
	`

	var event domain.Event
	err := r.db.QueryRowContext(ctx, queryEvent, id).Scan(
		&event.ID, &event.Title, &event.AdditionalInfo, &event.EventDate,
		&event.StartDateTime, &event.EndDateTime, &event.Status,
		&event.CreatedBy, &event.CreatedAt, &event.ResponseCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	questions, err := r.fetchQuestions(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Questions = questions

	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, COALESCE(e.additional_info, ''), e.event_date,
		       e.start_datetime, e.end_datetime, e.status, e.created_by, e.created_at,
		       COALESCE(rc.total, 0)
		FROM events e
		LEFT JOIN (
			SELECT event_id, COUNT(*) AS total
			FROM event_responses
			GROUP BY event_id
		) rc ON rc.event_id = e.id
		ORDER BY e.start_datetime ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(ctx, rows)
}

// Update writes the event row and applies the precomputed question diff in
// the same transaction.
func (r *eventRepository) Update(ctx context.Context, event *domain.Event, diff ports.QuestionDiff) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryEvent := `
		UPDATE events
		SET title = $2, additional_info = $3, event_date = $4,
		    start_datetime = $5, end_datetime = $6, status = $7
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, queryEvent,
		event.ID, event.Title, event.AdditionalInfo, event.EventDate,
		event.StartDateTime, event.EndDateTime, event.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrEventNotFound
	}

	if len(diff.ToDelete) > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM event_questions WHERE id = ANY($1)`,
			pq.Array(diff.ToDelete),
		)
		if err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
	}

	queryUpdate := `
		UPDATE event_questions
		SET text = $2, type = $3, required = $4, options = $5, sort_order = $6
		WHERE id = $1 AND event_id = $7
	`
	for _, question := range diff.ToUpdate {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		_, err = tx.ExecContext(ctx, queryUpdate,
			question.ID, question.Text, question.Type, question.Required,
			options, question.SortOrder, question.EventID,
		)
		if err != nil {
			return fmt.Errorf("failed to update question: %w", err)
		}
	}

	if err := insertQuestions(ctx, tx, diff.ToInsert); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func insertQuestions(ctx context.Context, tx *sql.Tx, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	queryQuestion := `
		INSERT INTO event_questions (id, event_id, text, type, required, options, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	stmt, err := tx.PrepareContext(ctx, queryQuestion)
	if err != nil {
		return fmt.Errorf("failed to prepare question statement: %w", err)
	}
	defer stmt.Close()

	for _, question := range questions {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			question.ID, question.EventID, question.Text, question.Type,
			question.Required, options, question.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}

	return nil
}

func (r *eventRepository) scanEvents(ctx context.Context, rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		err := rows.Scan(
			&event.ID, &event.Title, &event.AdditionalInfo, &event.EventDate,
			&event.StartDateTime, &event.EndDateTime, &event.Status,
			&event.CreatedBy, &event.CreatedAt, &event.ResponseCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		questions, err := r.fetchQuestions(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		event.Questions = questions

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// fetchQuestions returns the event's questions ordered by sort position,
// ties broken by insertion order.
func (r *eventRepository) fetchQuestions(ctx context.Context, eventID uuid.UUID) ([]domain.Question, error) {
	queryQuestions := `
		SELECT id, event_id, text, type, required, options, sort_order
		FROM event_questions
		WHERE event_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, queryQuestions, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var question domain.Question
		var rawOptions []byte
		err := rows.Scan(
			&question.ID, &question.EventID, &question.Text, &question.Type,
			&question.Required, &rawOptions, &question.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		question.Options = []string{}
		if len(rawOptions) > 0 {
			if err := json.Unmarshal(rawOptions, &question.Options); err != nil {
				return nil, fmt.Errorf("failed to decode options: %w", err)
			}
		}
		if question.Options == nil {
			question.Options = []string{}
		}

		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}
