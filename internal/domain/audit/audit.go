package audit

import (
	"context"
	"database/sql"
	"encoding/json"

	"perftrack/internal/platform/db"
	"perftrack/internal/requestctx"
)

type Event struct {
	ID         int64           `json:"id"`
	Actor      string          `json:"actor"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  string          `json:"createdAt"`
}

type Filter struct {
	Action     string
	EntityType string
	Actor      string
}

type Service struct {
	DB *db.DB
}

func New(store *db.DB) *Service {
	return &Service{DB: store}
}

// Record stores one event. The request id is taken from ctx.
func (s *Service) Record(ctx context.Context, actor, action, entityType, entityID string, payload any) error {
	var payloadJSON any
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = string(encoded)
	}

	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx, s.DB.Rebind(`
    INSERT INTO AuditEvents (actor, action, entity_type, entity_id, request_id, payload)
    VALUES (?, ?, ?, ?, ?, ?)
  `), actor, action, entityType, entityID, db.NullIfEmpty(requestctx.GetRequestID(ctx)), payloadJSON)
	return db.Classify(err, "record audit event")
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)

	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var total int
	if err := conn.QueryRowContext(ctx, s.DB.Rebind(query), args...).Scan(&total); err != nil {
		return 0, db.Classify(err, "count audit events")
	}
	return total, nil
}

// List returns matching events, newest first.
func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error) {
	query, args := buildBaseQuery(`SELECT event_id, COALESCE(actor, ''), action, entity_type,
           COALESCE(entity_id, ''), COALESCE(request_id, ''), payload, COALESCE(created_at, '')`, filter)
	query += " ORDER BY event_id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, s.DB.Rebind(query), args...)
	if err != nil {
		return nil, db.Classify(err, "list audit events")
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var evt Event
		var payload sql.NullString
		if err := rows.Scan(&evt.ID, &evt.Actor, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &payload, &evt.CreatedAt); err != nil {
			return nil, db.Classify(err, "scan audit event")
		}
		if payload.Valid && payload.String != "" {
			evt.Payload = json.RawMessage(payload.String)
		}
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, "list audit events")
	}
	return out, nil
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM AuditEvents WHERE 1 = 1"
	args := []any{}
	if filter.Action != "" {
		query += " AND action = ?"
		args = append(args, filter.Action)
	}
	if filter.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filter.EntityType)
	}
	if filter.Actor != "" {
		query += " AND actor = ?"
		args = append(args, filter.Actor)
	}
	return query, args
}
