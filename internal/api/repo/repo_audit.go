package repo

import (
	"time"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/pkg/database"
)

type IAuditRepository interface {
	InsertAudit(audit *model.AuthAudit) error
	ListAudit(offset, pageSize int, subjectUserId string) ([]model.AuthAudit, int64, error)
	PurgeBefore(cutoff time.Time) (int64, error)
}

type AuditRepo struct {
	db         database.IDatabase
	auditModel *model.AuthAudit
}

func NewAuditRepo(db database.IDatabase) IAuditRepository {
	return &AuditRepo{
		db:         db,
		auditModel: &model.AuthAudit{},
	}
}

func (ar *AuditRepo) InsertAudit(audit *model.AuthAudit) error {
	return ar.db.Database().Create(audit).Error
}

func (ar *AuditRepo) ListAudit(offset, pageSize int, subjectUserId string) ([]model.AuthAudit, int64, error) {
	var (
		records []model.AuthAudit
		count   int64
	)

	db := ar.db.Database().Table(ar.auditModel.TableName())
	if subjectUserId != "" {
		db = db.Where("subject_user_id = ?", subjectUserId)
	}
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("decided_at DESC").Offset(offset).Limit(pageSize).Find(&records).Error
	return records, count, err
}

// PurgeBefore deletes audit rows older than the cutoff, returning the
// number of rows removed.
func (ar *AuditRepo) PurgeBefore(cutoff time.Time) (int64, error) {
	result := ar.db.Database().Where("decided_at < ?", cutoff).Delete(&model.AuthAudit{})
	return result.RowsAffected, result.Error
}
