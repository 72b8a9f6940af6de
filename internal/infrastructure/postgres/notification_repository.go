package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, user_id, for_admins, title, message, type, read, read_at, created_at`

// visibleClause: propias del usuario o, si es admin, los broadcast. $1 = user_id, $2 = is_admin.
const visibleClause = `(user_id = $1 OR (for_admins AND $2::boolean))`

// NotificationRepo notificaciones sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		n.ID, nullString(n.UserID), n.ForAdmins, n.Title, n.Message, n.Type, n.Read, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// ListFor lista las notificaciones visibles para el destinatario, más recientes primero.
func (r *NotificationRepo) ListFor(ctx context.Context, rc repository.Recipient, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	limit, offset = pageArgs(limit, offset)
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE ` + visibleClause
	if unreadOnly {
		query += ` AND NOT read`
	}
	query += ` ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, recipientID(rc), rc.IsAdmin, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkAsRead marca una notificación; una ya leída conserva su read_at.
func (r *NotificationRepo) MarkAsRead(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE, read_at = $2 WHERE id = $1 AND NOT read`, id, at)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (r *NotificationRepo) MarkAllAsRead(ctx context.Context, rc repository.Recipient, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = TRUE, read_at = $3 WHERE `+visibleClause+` AND NOT read`,
		recipientID(rc), rc.IsAdmin, at)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, rc repository.Recipient) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE `+visibleClause+` AND NOT read`,
		recipientID(rc), rc.IsAdmin).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// DeleteReadBefore borra notificaciones leídas creadas antes de cutoff.
func (r *NotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old notifications: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// recipientID devuelve NULL para un destinatario sin usuario (nunca coincide con user_id).
func recipientID(rc repository.Recipient) *string {
	return nullString(rc.UserID)
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	var userID *string
	err := row.Scan(&n.ID, &userID, &n.ForAdmins, &n.Title, &n.Message, &n.Type, &n.Read, &n.ReadAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.UserID = fromNull(userID)
	return &n, nil
}
