package statex

import (
	"context"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ethanz-code/appkit/core/errors"
)

// snapshotRow is the key/value table snapshots are stored in.
type snapshotRow struct {
	Key       string `gorm:"primaryKey;size:255"`
	Data      []byte
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string { return "statex_snapshots" }

// GORMPersister stores snapshots in a relational database through GORM.
type GORMPersister struct {
	db *gorm.DB
}

// NewSQLitePersister creates a persister backed by a SQLite database at dsn.
// The snapshot table is migrated on construction.
func NewSQLitePersister(dsn string) (*GORMPersister, error) {
	return openGORM(sqlite.Open(dsn))
}

// NewMySQLPersister creates a persister backed by a MySQL database.
func NewMySQLPersister(dsn string) (*GORMPersister, error) {
	return openGORM(mysql.Open(dsn))
}

// NewPostgresPersister creates a persister backed by a PostgreSQL database.
func NewPostgresPersister(dsn string) (*GORMPersister, error) {
	return openGORM(postgres.Open(dsn))
}

func openGORM(dialector gorm.Dialector) (*GORMPersister, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnavailable, "statex.openGORM", err)
	}
	return NewGORMPersister(db)
}

// NewGORMPersister wraps an existing GORM handle.
func NewGORMPersister(db *gorm.DB) (*GORMPersister, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "statex.NewGORMPersister", err)
	}
	return &GORMPersister{db: db}, nil
}

// Save upserts the snapshot row for key.
func (p *GORMPersister) Save(ctx context.Context, key string, data []byte) error {
	row := snapshotRow{Key: key, Data: data, UpdatedAt: time.Now()}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

// Load returns the snapshot for key.
func (p *GORMPersister) Load(ctx context.Context, key string) ([]byte, error) {
	var row snapshotRow
	err := p.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Newf(errors.CodeNotFound, "no snapshot for %q", key)
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

// Delete removes the snapshot for key.
func (p *GORMPersister) Delete(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Delete(&snapshotRow{}, "key = ?", key).Error
}

// Ping checks the underlying connection.
func (p *GORMPersister) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (p *GORMPersister) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
