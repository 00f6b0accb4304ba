package database

import (
	"gorm.io/gorm"

	"github.com/kdudkov/goclaim/internal/model"
)

type ClaimQuery struct {
	Query[model.Claim]
	id        string
	active    bool
	hasActive bool
}

func NewClaimQuery(db *gorm.DB) *ClaimQuery {
	return &ClaimQuery{
		Query: Query[model.Claim]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "ricorsi.created_at desc",
		},
	}
}

func (q *ClaimQuery) Order(s string) *ClaimQuery {
	q.order = s
	return q
}

func (q *ClaimQuery) Limit(n int) *ClaimQuery {
	q.limit = n
	return q
}

func (q *ClaimQuery) Offset(n int) *ClaimQuery {
	q.offset = n
	return q
}

func (q *ClaimQuery) Id(id string) *ClaimQuery {
	q.id = id
	return q
}

func (q *ClaimQuery) Active(active bool) *ClaimQuery {
	q.active = active
	q.hasActive = true

	return q
}

func (q *ClaimQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("ricorsi.id = ?", q.id)
	}

	if q.hasActive {
		tx = tx.Where("ricorsi.attivo = ?", q.active)
	}

	return tx
}

func (q *ClaimQuery) Get() []*model.Claim {
	return q.get(q.where().Model(&model.Claim{}))
}

func (q *ClaimQuery) One() *model.Claim {
	if q.id == "" {
		return nil
	}

	return q.one(q.where().Model(&model.Claim{}))
}

func (q *ClaimQuery) Count() int64 {
	return q.count(q.where().Model(&model.Claim{}))
}

func (q *ClaimQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Claim{}), updates)
}

func (q *ClaimQuery) Delete() *gorm.DB {
	return q.where().Delete(&model.Claim{})
}
