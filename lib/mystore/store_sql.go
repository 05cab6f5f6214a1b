package mystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entity is the single table every kind is stored in, with the value json-encoded
type entity struct {
	Kind      string `gorm:"column:kind;primaryKey;size:128"`
	UID       string `gorm:"column:uid;primaryKey;size:256"`
	Payload   datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (entity) TableName() string {
	return "entities"
}

type sqlStore[T any] struct {
	db   *gorm.DB
	kind string
}

func newSQLStore[T any](c context.Context, dialector gorm.Dialector) (*sqlStore[T], func(), error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to database: %w", err)
	}

	err = db.WithContext(c).AutoMigrate(&entity{})
	if err != nil {
		return nil, nil, fmt.Errorf("error migrating entities table: %w", err)
	}

	return &sqlStore[T]{
			db:   db,
			kind: kindOf[T](),
		}, func() {
			sqlDB, err := db.DB()
			if err == nil {
				sqlDB.Close()
			}
		}, nil
}

func (s *sqlStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return s.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		return f(context.WithValue(c, ctxTransactionKey{}, tx))
	})
}

func (s *sqlStore[T]) conn(c context.Context) *gorm.DB {
	if tx, ok := c.Value(ctxTransactionKey{}).(*gorm.DB); ok {
		return tx.WithContext(c)
	}
	return s.db.WithContext(c)
}

func (s *sqlStore[T]) Put(c context.Context, uid string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding entity %s with uid %s: %w", s.kind, uid, err)
	}

	row := entity{
		Kind:    s.kind,
		UID:     uid,
		Payload: datatypes.JSON(payload),
	}
	err = s.conn(c).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %w", s.kind, uid, err)
	}

	return nil
}

func (s *sqlStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var value T

	row := entity{}
	err := s.conn(c).Where("kind = ? AND uid = ?", s.kind, uid).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("error fetching entity %s with uid %s: %w", s.kind, uid, err)
	}

	err = json.Unmarshal(row.Payload, &value)
	if err != nil {
		return value, false, fmt.Errorf("error decoding entity %s with uid %s: %w", s.kind, uid, err)
	}

	return value, true, nil
}

func (s *sqlStore[T]) Delete(c context.Context, uid string) error {
	err := s.conn(c).Where("kind = ? AND uid = ?", s.kind, uid).Delete(&entity{}).Error
	if err != nil {
		return fmt.Errorf("error deleting entity %s with uid %s: %w", s.kind, uid, err)
	}
	return nil
}

func (s *sqlStore[T]) List(c context.Context) ([]T, error) {
	rows := []entity{}
	err := s.conn(c).Where("kind = ?", s.kind).Order("created_at").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching all entities %s: %w", s.kind, err)
	}

	result := make([]T, 0, len(rows))
	for _, row := range rows {
		var value T
		err = json.Unmarshal(row.Payload, &value)
		if err != nil {
			return nil, fmt.Errorf("error decoding entity %s with uid %s: %w", s.kind, row.UID, err)
		}
		result = append(result, value)
	}

	return result, nil
}

func (s *sqlStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	return filterAndSort(all, filters, orderByField)
}
