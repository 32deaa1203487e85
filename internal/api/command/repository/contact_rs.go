package commandRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	"github.com/nassim127/seniorvoice-ai/internal/entity"
	contextPkg "github.com/nassim127/seniorvoice-ai/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ContactDB struct {
	ID        sql.NullString `db:"id"`
	DeviceID  sql.NullString `db:"device_id"`
	Name      sql.NullString `db:"name"`
	Phone     sql.NullString `db:"phone"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *contactRepository) CreateContact(ctx context.Context, contact entity.Contact) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         contact.ID,
		"device_id":  contact.DeviceID,
		"name":       contact.Name,
		"phone":      contact.Phone,
		"created_at": contact.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateContact, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateContact")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating contact")
		return err
	}

	return nil
}

func (r *contactRepository) GetContactsByDeviceID(ctx context.Context, deviceID string) ([]entity.Contact, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetContactsByDeviceID, map[string]interface{}{
		"device_id": deviceID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetContactsByDeviceID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []ContactDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching contacts")
		return nil, err
	}

	contacts := make([]entity.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, row.toEntity())
	}

	return contacts, nil
}

func (r *contactRepository) GetContactByName(ctx context.Context, deviceID, name string) (entity.Contact, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetContactByName, map[string]interface{}{
		"device_id": deviceID,
		"name":      name,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetContactByName named query preparation err")
		return entity.Contact{}, err
	}
	query = r.q.Rebind(query)

	var row ContactDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Contact{}, command.ErrContactNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching contact by name")
		return entity.Contact{}, err
	}

	return row.toEntity(), nil
}

func (r *contactRepository) DeleteContact(ctx context.Context, deviceID, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteContact, map[string]interface{}{
		"device_id": deviceID,
		"id":        id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteContact named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting contact")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return command.ErrContactNotFound
	}

	return nil
}

func (db ContactDB) toEntity() entity.Contact {
	return entity.Contact{
		ID:        db.ID.String,
		DeviceID:  db.DeviceID.String,
		Name:      db.Name.String,
		Phone:     db.Phone.String,
		CreatedAt: db.CreatedAt,
	}
}
