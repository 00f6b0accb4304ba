package database

import (
	"gorm.io/gorm"

	"github.com/kdudkov/goclaim/internal/model"
)

type AdminQuery struct {
	Query[model.Admin]
	id       string
	username string
}

func NewAdminQuery(db *gorm.DB) *AdminQuery {
	return &AdminQuery{
		Query: Query[model.Admin]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "admins.created_at",
		},
	}
}

func (q *AdminQuery) Id(id string) *AdminQuery {
	q.id = id
	return q
}

func (q *AdminQuery) Username(username string) *AdminQuery {
	q.username = username
	return q
}

func (q *AdminQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("admins.id = ?", q.id)
	}

	if q.username != "" {
		tx = tx.Where("admins.username = ?", q.username)
	}

	return tx
}

func (q *AdminQuery) Get() []*model.Admin {
	return q.get(q.where().Model(&model.Admin{}))
}

func (q *AdminQuery) One() *model.Admin {
	if q.id == "" && q.username == "" {
		return nil
	}

	return q.one(q.where().Model(&model.Admin{}))
}

func (q *AdminQuery) Count() int64 {
	return q.count(q.where().Model(&model.Admin{}))
}

func (q *AdminQuery) Delete() *gorm.DB {
	return q.where().Delete(&model.Admin{})
}
