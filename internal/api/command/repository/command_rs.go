package commandRepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/entity"
	contextPkg "github.com/nassim127/seniorvoice-ai/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CommandRecordDB struct {
	ID               sql.NullString  `db:"id"`
	DeviceID         sql.NullString  `db:"device_id"`
	RawText          sql.NullString  `db:"raw_text"`
	Action           sql.NullString  `db:"action"`
	Slots            sql.NullString  `db:"slots"`
	Confidence       sql.NullFloat64 `db:"confidence"`
	SpeechConfidence sql.NullFloat64 `db:"speech_confidence"`
	Language         sql.NullString  `db:"language"`
	AudioURL         sql.NullString  `db:"audio_url"`
	CreatedAt        time.Time       `db:"created_at"`
}

func (r *commandRepository) CreateCommandRecord(ctx context.Context, record entity.CommandRecord) error {
	requestID := contextPkg.GetRequestID(ctx)

	slotsJSON, err := json.Marshal(record.Slots)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal slots")
		return err
	}

	argsKV := map[string]interface{}{
		"id":                record.ID,
		"device_id":         record.DeviceID,
		"raw_text":          record.RawText,
		"action":            record.Action,
		"slots":             string(slotsJSON),
		"confidence":        record.Confidence,
		"speech_confidence": record.SpeechConfidence,
		"language":          record.Language,
		"audio_url":         record.AudioURL,
		"created_at":        record.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCommandRecord, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommandRecord")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating command record")
		return err
	}

	return nil
}

func (r *commandRepository) GetCommandsByDeviceID(ctx context.Context, deviceID string, limit, offset int) ([]entity.CommandRecord, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"device_id": deviceID,
		"limit":     limit,
		"offset":    offset,
	}

	query, args, err := sqlx.Named(queryGetCommandsByDeviceID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsByDeviceID named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []CommandRecordDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching command history")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountCommandsByDeviceID, map[string]interface{}{
		"device_id": deviceID,
	})
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting command history")
		return nil, 0, err
	}

	records := make([]entity.CommandRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toEntity())
	}

	return records, total, nil
}

func (db CommandRecordDB) toEntity() entity.CommandRecord {
	slots := map[string]string{}
	if db.Slots.Valid && db.Slots.String != "" {
		_ = json.Unmarshal([]byte(db.Slots.String), &slots)
	}

	return entity.CommandRecord{
		ID:               db.ID.String,
		DeviceID:         db.DeviceID.String,
		RawText:          db.RawText.String,
		Action:           db.Action.String,
		Slots:            slots,
		Confidence:       db.Confidence.Float64,
		SpeechConfidence: db.SpeechConfidence.Float64,
		Language:         db.Language.String,
		AudioURL:         db.AudioURL.String,
		CreatedAt:        db.CreatedAt,
	}
}
