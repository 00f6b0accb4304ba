package database

import (
	"gorm.io/gorm"

	"github.com/kdudkov/goclaim/internal/model"
)

type InviteQuery struct {
	Query[model.Invite]
	token string
}

func NewInviteQuery(db *gorm.DB) *InviteQuery {
	return &InviteQuery{
		Query: Query[model.Invite]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "invites.created_at desc",
		},
	}
}

func (q *InviteQuery) Token(token string) *InviteQuery {
	q.token = token
	return q
}

func (q *InviteQuery) where() *gorm.DB {
	tx := q.db

	if q.token != "" {
		tx = tx.Where("invites.token = ?", q.token)
	}

	return tx
}

func (q *InviteQuery) Get() []*model.Invite {
	return q.get(q.where().Model(&model.Invite{}))
}

// One matches nothing without a token filter.
func (q *InviteQuery) One() *model.Invite {
	if q.token == "" {
		return nil
	}

	return q.one(q.where().Model(&model.Invite{}))
}
