package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

func (r *responseRepository) CreateHeader(ctx context.Context, response *domain.Response) error {
	query := `
		INSERT INTO event_responses (id, event_id, submitted_by)
		VALUES ($1, $2, $3)
		RETURNING submitted_at
	`
	err := r.db.QueryRowContext(ctx, query, response.ID, response.EventID, response.SubmittedBy).
		Scan(&response.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

func (r *responseRepository) InsertAnswers(ctx context.Context, answers []domain.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO event_answers (id, response_id, question_id, value)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare answer statement: %w", err)
	}
	defer stmt.Close()

	for _, answer := range answers {
		_, err = stmt.ExecContext(ctx, answer.ID, answer.ResponseID, answer.QuestionID, answer.Value)
		if err != nil {
			return fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *responseRepository) DeleteHeader(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM event_responses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	return nil
}

func (r *responseRepository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Response, error) {
	queryResponses := `
		SELECT r.id, r.event_id, r.submitted_at, r.submitted_by, COALESCE(u.name, '')
		FROM event_responses r
		LEFT JOIN users u ON u.id = r.submitted_by
		WHERE r.event_id = $1
		ORDER BY r.submitted_at ASC
	`
	rows, err := r.db.QueryContext(ctx, queryResponses, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	defer rows.Close()

	var responses []*domain.Response
	byID := make(map[uuid.UUID]*domain.Response)
	for rows.Next() {
		var response domain.Response
		err := rows.Scan(
			&response.ID, &response.EventID, &response.SubmittedAt,
			&response.SubmittedBy, &response.SubmitterName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		response.Answers = []domain.Answer{}
		responses = append(responses, &response)
		byID[response.ID] = &response
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}

	if len(responses) == 0 {
		return responses, nil
	}

	queryAnswers := `
		SELECT a.id, a.response_id, a.question_id, a.value, a.created_at
		FROM event_answers a
		JOIN event_responses r ON r.id = a.response_id
		WHERE r.event_id = $1
	`
	answerRows, err := r.db.QueryContext(ctx, queryAnswers, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var answer domain.Answer
		err := answerRows.Scan(&answer.ID, &answer.ResponseID, &answer.QuestionID, &answer.Value, &answer.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		if response, ok := byID[answer.ResponseID]; ok {
			response.Answers = append(response.Answers, answer)
		}
	}
	if err := answerRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answers: %w", err)
	}

	return responses, nil
}

// DeleteByIDs hard-deletes the responses; their answers cascade.
func (r *responseRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM event_responses WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	return nil
}

func (r *responseRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_responses WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
