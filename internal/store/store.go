package store

import (
	stderrors "errors"
	"time"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"

	"main/internal/account"
	"main/pkg/conn"
)

var ErrNoSnapshot = stderrors.New("store: no snapshot found")

// SnapshotRow is one persisted account snapshot.
type SnapshotRow struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	RunID        string `gorm:"index"`
	BaseCurrency string
	LastUpdate   int64
	BuyingPower  int64
	CreatedAt    time.Time

	Cash      []CashRow     `gorm:"foreignKey:SnapshotID"`
	Positions []PositionRow `gorm:"foreignKey:SnapshotID"`
	Trades    []TradeRow    `gorm:"foreignKey:SnapshotID"`
}

// CashRow is one wallet balance of a snapshot.
type CashRow struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	SnapshotID uint64 `gorm:"index"`
	Currency   string
	Amount     int64
}

// PositionRow is one open position of a snapshot.
type PositionRow struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	SnapshotID uint64 `gorm:"index"`
	Asset      string
	Size       int64
	AvgPrice   int64
	MktPrice   int64
	LastUpdate int64
}

// TradeRow is one retained trade of a snapshot.
type TradeRow struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	SnapshotID uint64 `gorm:"index"`
	Time       int64
	Asset      string
	Size       int64
	Price      int64
	Fee        int64
	PNL        int64
	OrderID    uint64
}

// Store persists account snapshots to PostgreSQL.
type Store struct {
	db *gorm.DB
}

// New migrates the schema and returns a store bound to the client.
func New(client *conn.Client) (*Store, error) {
	db := client.DB()
	if err := db.AutoMigrate(&SnapshotRow{}, &CashRow{}, &PositionRow{}, &TradeRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate snapshot schema")
	}
	return &Store{db: db}, nil
}

// SaveSnapshot writes one frozen account snapshot in a transaction.
func (s *Store) SaveSnapshot(runID string, acc *account.Account) error {
	row := toRow(runID, acc)
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	}); err != nil {
		return errors.Wrap(err, "save snapshot")
	}
	return nil
}

// LoadLatest reads the most recent snapshot for a run id, suitable for
// re-hydrating an internal account via Load.
func (s *Store) LoadLatest(runID string) (*account.Account, error) {
	var row SnapshotRow
	err := s.db.
		Preload("Cash").
		Preload("Positions").
		Preload("Trades").
		Where("run_id = ?", runID).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, errors.Wrap(err, "load snapshot")
	}
	return fromRow(&row), nil
}
