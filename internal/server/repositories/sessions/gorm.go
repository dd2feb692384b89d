package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// Record is the GORM mapping of the sessions table. The User association
// exists only so AutoMigrate emits the foreign key; it is never loaded.
type Record struct {
	ID           string       `gorm:"primaryKey;size:36"`
	Token        string       `gorm:"uniqueIndex;size:2048;not null"`
	UserID       string       `gorm:"size:36;not null;index"`
	User         users.Record `gorm:"foreignKey:UserID;references:ID"`
	LoginTime    time.Time    `gorm:"not null"`
	LoginAddress *string      `gorm:"size:255"`
}

func (Record) TableName() string { return "sessions" }

func (r *Record) toModel() *models.Session {
	s := &models.Session{
		ID:        r.ID,
		Token:     r.Token,
		UserID:    r.UserID,
		LoginTime: r.LoginTime,
	}
	if r.LoginAddress != nil {
		s.LoginAddress = *r.LoginAddress
	}
	return s
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, s *models.Session) error {
	rec := Record{
		ID:        uuid.NewString(),
		Token:     s.Token,
		UserID:    s.UserID,
		LoginTime: s.LoginTime,
	}
	if s.LoginAddress != "" {
		addr := s.LoginAddress
		rec.LoginAddress = &addr
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&users.Record{}).Where("id = ?", s.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return common.ErrorNotFound
		}
		return tx.Omit("User").Create(&rec).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return err
		case errors.Is(err, gorm.ErrDuplicatedKey) || dbx.IsUniqueViolation(err):
			return common.ErrorAlreadyExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return common.ErrorNotFound
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}

	s.ID = rec.ID
	return nil
}

func (r *GormRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	var rec Record
	if err := r.db.WithContext(ctx).Where("token = ?", token).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec.toModel(), nil
}

func (r *GormRepository) Delete(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("db error: %w", res.Error)
	}
	return res.RowsAffected, nil
}
