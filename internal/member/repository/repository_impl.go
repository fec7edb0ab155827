package repository

import (
	"context"

	"gorm.io/gorm"

	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
)

type repo struct{}

func Provide() memberdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *memberdomain.Member) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *memberdomain.Member) error {
	return db.WithContext(ctx).Save(m).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	err := db.WithContext(ctx).Where("LOWER(code) = LOWER(?)", code).Take(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]memberdomain.Member, error) {
	var rows []memberdomain.Member
	if err := db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
