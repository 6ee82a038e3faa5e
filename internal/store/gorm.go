package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arkhipovd/storefront/internal/models"
)

// GormStore is the persistent-local backend: the same contract as
// MemoryStore, but backed by a database file (sqlite by default, a
// postgres DSN also works), so catalog and session state survive
// restarts.
type GormStore struct {
	DB *gorm.DB
}

// sessionRow is the single-row current-user marker.
type sessionRow struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null"`
	Token  string `gorm:"not null"`
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// Open connects to the DSN and migrates the schema. A postgres:// DSN
// uses the postgres driver, anything else is treated as a sqlite path
// (":memory:" included).
func Open(ctx context.Context, dsn string) (*GormStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty dsn")
	}

	cfg := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db       *gorm.DB
		err      error
		isSQLite bool
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		isSQLite = true
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if isSQLite {
		// sqlite is single-writer, and a pooled :memory: DSN would give
		// every connection its own database
		sqlDB.SetMaxOpenConns(1)
	} else {
		configurePool(sqlDB)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &sessionRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &GormStore{DB: db}, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) User(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, data models.InsertUser) (*models.User, error) {
	role := data.Role
	if role == "" {
		role = models.RoleUser
	}
	u := models.User{
		Username: data.Username,
		Email:    data.Email,
		Password: data.Password,
		Role:     role,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) Products(ctx context.Context) ([]models.Product, error) {
	items := []models.Product{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) Product(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// likePattern wraps the query in wildcards, escaping LIKE
// metacharacters so the query only ever matches as a literal substring.
func likePattern(query string) string {
	q := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + q + "%"
}

func (s *GormStore) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	q := likePattern(query)
	items := []models.Product{}
	err := s.DB.WithContext(ctx).
		Where(`lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\' OR lower(category) LIKE ? ESCAPE '\' OR (brand IS NOT NULL AND lower(brand) LIKE ? ESCAPE '\')`,
			q, q, q, q).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	items := []models.Product{}
	err := s.DB.WithContext(ctx).
		Where("lower(category) = ?", strings.ToLower(category)).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, data models.InsertProduct) (*models.Product, error) {
	p := newProduct(data)
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}

	applyPatch(&p, patch)
	p.ID = id
	p.UpdatedAt = time.Now().UTC()
	if err := s.DB.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	res := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) SaveSession(ctx context.Context, userID uint, token string) error {
	row := sessionRow{ID: 1, UserID: userID, Token: token}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

func (s *GormStore) LoadSession(ctx context.Context) (uint, string, error) {
	var row sessionRow
	if err := s.DB.WithContext(ctx).First(&row, 1).Error; err != nil {
		return 0, "", notFound(err)
	}
	return row.UserID, row.Token, nil
}

func (s *GormStore) ClearSession(ctx context.Context) error {
	return s.DB.WithContext(ctx).Delete(&sessionRow{}, 1).Error
}
