package model

import (
	"time"

	"github.com/expertly/expertly/pkg/contract"
)

// AuthAudit is the persisted form of an authorization decision.
type AuthAudit struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AuditId       string    `gorm:"column:audit_id;not null;uniqueIndex" json:"auditId"`
	SubjectUserId string    `gorm:"column:subject_user_id;index" json:"subjectUserId"`
	Scope         string    `gorm:"column:scope;not null;index" json:"scope"`
	RequiredRole  string    `gorm:"column:required_role" json:"requiredRole"`
	ActualRole    string    `gorm:"column:actual_role" json:"actualRole"`
	Allowed       bool      `gorm:"column:allowed;not null" json:"allowed"`
	Reason        string    `gorm:"column:reason;not null" json:"reason"`
	TraceId       string    `gorm:"column:trace_id;index" json:"traceId"`
	DecidedAt     time.Time `gorm:"column:decided_at;not null;index" json:"decidedAt"`
	CreateTime    time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
}

func (AuthAudit) TableName() string {
	return "t_auth_audit"
}

// NewAuthAudit converts a decision into its persisted form; the audit
// id is assigned by the sink.
func NewAuthAudit(auditId string, decision contract.AuthzDecision) *AuthAudit {
	return &AuthAudit{
		AuditId:       auditId,
		SubjectUserId: decision.SubjectUserId,
		Scope:         decision.Scope,
		RequiredRole:  decision.RequiredRole,
		ActualRole:    decision.ActualRole,
		Allowed:       decision.Allowed,
		Reason:        decision.Reason,
		TraceId:       decision.TraceId,
		DecidedAt:     decision.Timestamp,
	}
}
