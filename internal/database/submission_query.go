package database

import (
	"gorm.io/gorm"

	"github.com/kdudkov/goclaim/internal/model"
)

type SubmissionQuery struct {
	Query[model.Submission]
	id      string
	claimID string
}

func NewSubmissionQuery(db *gorm.DB) *SubmissionQuery {
	return &SubmissionQuery{
		Query: Query[model.Submission]{
			db:     db,
			limit:  1000,
			offset: 0,
			order:  "submissions.submitted_at desc",
		},
	}
}

func (q *SubmissionQuery) Order(s string) *SubmissionQuery {
	q.order = s
	return q
}

func (q *SubmissionQuery) Limit(n int) *SubmissionQuery {
	q.limit = n
	return q
}

func (q *SubmissionQuery) Offset(n int) *SubmissionQuery {
	q.offset = n
	return q
}

func (q *SubmissionQuery) Id(id string) *SubmissionQuery {
	q.id = id
	return q
}

func (q *SubmissionQuery) Claim(id string) *SubmissionQuery {
	q.claimID = id
	return q
}

func (q *SubmissionQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("submissions.id = ?", q.id)
	}

	if q.claimID != "" {
		tx = tx.Where("submissions.ricorso_id = ?", q.claimID)
	}

	return tx
}

func (q *SubmissionQuery) Get() []*model.Submission {
	return q.get(q.where().Model(&model.Submission{}))
}

func (q *SubmissionQuery) One() *model.Submission {
	if q.id == "" {
		return nil
	}

	return q.one(q.where().Model(&model.Submission{}))
}

func (q *SubmissionQuery) Count() int64 {
	return q.count(q.where().Model(&model.Submission{}))
}
