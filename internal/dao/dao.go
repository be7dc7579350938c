package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"cre-commission-api/internal/dal"
	"cre-commission-api/internal/store"
)

// Dao is the gorm-backed store. One struct carries the whole surface; the
// method set is split across files by aggregate.
type Dao struct {
	DB *gorm.DB
}

var _ store.Store = (*Dao)(nil)

func NewDao() *Dao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &Dao{DB: dal.MainDB}
}

// NewDaoWithDB scopes the dao to a custom DB (e.g. a transaction).
func NewDaoWithDB(db *gorm.DB) *Dao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &Dao{DB: db}
}

func (r *Dao) checkDB() error {
	if r == nil {
		return errors.New("Dao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// Tx runs fn against a transaction-scoped store.
func (r *Dao) Tx(fn func(store.Store) error) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("tx failed: %w", err)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(NewDaoWithDB(tx))
	})
}
