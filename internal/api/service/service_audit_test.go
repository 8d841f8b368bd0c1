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
	"testing"
	"time"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepo struct {
	mu      sync.Mutex
	records []model.AuthAudit
	gate    chan struct{} // when set, InsertAudit blocks until closed
}

func (f *fakeAuditRepo) InsertAudit(audit *model.AuthAudit) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *audit)
	return nil
}

func (f *fakeAuditRepo) ListAudit(offset, pageSize int, subjectUserId string) ([]model.AuthAudit, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.AuthAudit(nil), f.records...), int64(len(f.records)), nil
}

func (f *fakeAuditRepo) PurgeBefore(cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAuditRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func denyDecision(userId string) contract.AuthzDecision {
	return contract.AuthzDecision{
		SubjectUserId: userId,
		Scope:         contract.ScopePlatform,
		RequiredRole:  string(contract.PlatformRoleAdmin),
		Allowed:       false,
		Reason:        contract.ReasonInsufficientRole,
		TraceId:       "trace-1",
		Timestamp:     time.Now(),
	}
}

func TestAuditServiceRecordPersists(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	as := NewAuditService(auditRepo, 16, 0)

	as.Record(denyDecision("u-1"))
	as.Close()

	require.Equal(t, 1, auditRepo.count())
	assert.Equal(t, "u-1", auditRepo.records[0].SubjectUserId)
	assert.False(t, auditRepo.records[0].Allowed)
	assert.NotEmpty(t, auditRepo.records[0].AuditId)
}

func TestAuditServiceRecordNeverBlocks(t *testing.T) {
	gate := make(chan struct{})
	auditRepo := &fakeAuditRepo{gate: gate}
	as := NewAuditService(auditRepo, 1, 0)

	done := make(chan struct{})
	go func() {
		// writer is stuck on the gate; buffer holds one more, the
		// rest must be dropped without blocking the caller
		for i := 0; i < 10; i++ {
			as.Record(denyDecision("u-burst"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full buffer")
	}

	close(gate)
	as.Close()

	// at most the in-flight decision plus the buffered one survive
	assert.LessOrEqual(t, auditRepo.count(), 2)
	assert.GreaterOrEqual(t, auditRepo.count(), 1)
}

func TestAuditServiceCloseDrains(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	as := NewAuditService(auditRepo, 64, 0)

	for i := 0; i < 20; i++ {
		as.Record(denyDecision("u-drain"))
	}
	as.Close()

	assert.Equal(t, 20, auditRepo.count())
}

func TestAuditServiceRecordAfterCloseDrops(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	as := NewAuditService(auditRepo, 4, 0)
	as.Close()

	// a handler still in flight past shutdown must not be failed by
	// its audit record
	assert.NotPanics(t, func() { as.Record(denyDecision("u-late")) })
	assert.Equal(t, 0, auditRepo.count())
}

func TestAuditServiceCloseIdempotent(t *testing.T) {
	as := NewAuditService(&fakeAuditRepo{}, 4, 0)
	as.Close()
	assert.NotPanics(t, func() { as.Close() })
}

func TestAuditServiceListPaging(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	as := NewAuditService(auditRepo, 4, 0)
	defer as.Close()

	_, _, err := as.ListAudit(0, 0, "")
	require.NoError(t, err)
}
