// Copyright 2025 Expertly Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"sync"
	"time"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/internal/api/repo"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/id"
	"github.com/expertly/expertly/pkg/log"
	"github.com/expertly/expertly/pkg/metrics"
	"github.com/robfig/cron/v3"
)

const defaultAuditBuffer = 1024

// AuditService persists authorization decisions. Record never blocks
// the caller: decisions go through a buffered channel to a single
// writer goroutine, and are dropped with a warning when the buffer is
// full. A failure to record must never fail the decision itself.
type AuditService struct {
	auditRepo repo.IAuditRepository

	queue     chan contract.AuthzDecision
	done      chan struct{}
	closeOnce sync.Once

	// mu orders Record against Close so a decision arriving during
	// shutdown is dropped instead of hitting a closed channel.
	mu     sync.RWMutex
	closed bool

	cron          *cron.Cron
	retentionDays int
}

func NewAuditService(auditRepo repo.IAuditRepository, bufferSize, retentionDays int) *AuditService {
	if bufferSize <= 0 {
		bufferSize = defaultAuditBuffer
	}

	as := &AuditService{
		auditRepo:     auditRepo,
		queue:         make(chan contract.AuthzDecision, bufferSize),
		done:          make(chan struct{}),
		retentionDays: retentionDays,
	}
	go as.run()

	return as
}

// Record hands a decision to the writer goroutine. Non-blocking, and
// safe after Close: a request still in flight during shutdown gets its
// decision dropped, never a panic.
func (as *AuditService) Record(decision contract.AuthzDecision) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if as.closed {
		metrics.AuditDroppedTotal.Inc()
		log.Warnw("audit sink closed, decision dropped",
			"subjectUserId", decision.SubjectUserId, "scope", decision.Scope, "allowed", decision.Allowed)
		return
	}

	select {
	case as.queue <- decision:
	default:
		metrics.AuditDroppedTotal.Inc()
		log.Warnw("audit buffer full, decision dropped",
			"subjectUserId", decision.SubjectUserId, "scope", decision.Scope, "allowed", decision.Allowed)
	}
}

func (as *AuditService) run() {
	defer close(as.done)

	for decision := range as.queue {
		audit := model.NewAuthAudit(id.GetUUIDWithoutDashes(), decision)
		if err := as.auditRepo.InsertAudit(audit); err != nil {
			log.Errorw("failed to persist audit record",
				"subjectUserId", decision.SubjectUserId, "scope", decision.Scope, "error", err)
		}
	}
}

// StartRetention schedules the daily purge of expired audit rows.
// No-op when retention is disabled (retentionDays <= 0).
func (as *AuditService) StartRetention() {
	if as.retentionDays <= 0 {
		return
	}

	as.cron = cron.New()
	_, err := as.cron.AddFunc("@daily", func() {
		cutoff := time.Now().AddDate(0, 0, -as.retentionDays)
		removed, err := as.auditRepo.PurgeBefore(cutoff)
		if err != nil {
			log.Errorw("audit retention purge failed", "error", err)
			return
		}
		log.Infow("audit retention purge done", "removed", removed, "cutoff", cutoff)
	})
	if err != nil {
		log.Errorw("failed to schedule audit retention", "error", err)
		return
	}
	as.cron.Start()
}

// ListAudit pages through the audit trail, newest first.
func (as *AuditService) ListAudit(pageNum, pageSize int, subjectUserId string) ([]model.AuthAudit, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return as.auditRepo.ListAudit((pageNum-1)*pageSize, pageSize, subjectUserId)
}

// Close drains pending decisions and stops the retention job. Records
// arriving after Close are dropped.
func (as *AuditService) Close() {
	as.closeOnce.Do(func() {
		if as.cron != nil {
			as.cron.Stop()
		}

		as.mu.Lock()
		as.closed = true
		close(as.queue)
		as.mu.Unlock()

		<-as.done
	})
}
