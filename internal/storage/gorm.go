package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	EntryKey  string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// GormKV stores every key as a row of kv_entries. Works on postgres and sqlite.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, errors.Wrap(err, "migrate kv_entries")
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var e kvEntry
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", key)
	}
	return []byte(e.Value), nil
}

func (g *GormKV) Put(ctx context.Context, key string, value []byte) error {
	e := kvEntry{EntryKey: key, Value: string(value), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
	return errors.Wrapf(err, "put %s", key)
}

func (g *GormKV) Delete(ctx context.Context, key string) error {
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&kvEntry{}).Error
	return errors.Wrapf(err, "delete %s", key)
}

func (g *GormKV) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := g.db.WithContext(ctx).Model(&kvEntry{}).Order("entry_key").Pluck("entry_key", &keys).Error
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	return keys, nil
}

func (g *GormKV) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
