package commandRepository

import (
	"github.com/nassim127/seniorvoice-ai/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Commands: &commandRepository{q: sqlExecutor, log: r.log},
		Contacts: &contactRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Commands interface {
		CreateCommandRecord(ctx context.Context, record entity.CommandRecord) error
		GetCommandsByDeviceID(ctx context.Context, deviceID string, limit, offset int) ([]entity.CommandRecord, int, error)
	}

	Contacts interface {
		CreateContact(ctx context.Context, contact entity.Contact) error
		GetContactsByDeviceID(ctx context.Context, deviceID string) ([]entity.Contact, error)
		GetContactByName(ctx context.Context, deviceID, name string) (entity.Contact, error)
		DeleteContact(ctx context.Context, deviceID, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type commandRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type contactRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
