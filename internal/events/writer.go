package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Writer appends to the audit event log. The log is the diary of every
// mutation applied to the record store.
type Writer struct {
	DB  *sql.DB
	Now func() time.Time
}

type EventPayload map[string]any

func (w Writer) Append(ctx context.Context, evtType, writID, actorID string, payload EventPayload) error {
	now := w.Now
	if now == nil {
		now = time.Now
	}
	ts := now().UTC().Format(time.RFC3339)
	if payload == nil {
		payload = EventPayload{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = w.DB.ExecContext(ctx, `INSERT INTO events(ts,type,writ_id,actor_id,payload_json) VALUES (?,?,?,?,?)`,
		ts, evtType, nullable(writID), actorID, string(data))
	return err
}

// Latest returns the newest events first, optionally filtered by type and
// writ, starting below the cursor when one is given.
func (w Writer) Latest(ctx context.Context, limit int, cursor int64, evtType, writID string) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	clauses := []string{"1=1"}
	var args []any
	if evtType != "" {
		clauses = append(clauses, "type=?")
		args = append(args, evtType)
	}
	if writID != "" {
		clauses = append(clauses, "writ_id=?")
		args = append(args, writID)
	}
	if cursor > 0 {
		clauses = append(clauses, "id<?")
		args = append(args, cursor)
	}
	where := "WHERE " + strings.Join(clauses, " AND ")
	args = append(args, limit)
	rows, err := w.DB.QueryContext(ctx, `SELECT id,ts,type,writ_id,actor_id,payload_json FROM events `+where+` ORDER BY id DESC LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var r Record
		var writ sql.NullString
		if err := rows.Scan(&r.ID, &r.TS, &r.Type, &writ, &r.ActorID, &r.Payload); err != nil {
			return nil, err
		}
		if writ.Valid {
			r.WritID = writ.String
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// Record is one audit log row.
type Record struct {
	ID      int64  `json:"id"`
	TS      string `json:"ts"`
	Type    string `json:"type"`
	WritID  string `json:"writ_id,omitempty"`
	ActorID string `json:"actor_id"`
	Payload string `json:"payload_json"`
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
