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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authorization decision outcomes used as the "outcome" label.
const (
	OutcomeGranted = "granted"
	OutcomeDenied  = "denied"
)

var (
	// AuthzDecisionsTotal counts guard decisions by scope kind and outcome.
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization guard decisions",
		},
		[]string{"scope", "outcome"},
	)

	// AuthzLookupFailuresTotal counts membership lookups that failed and
	// were converted into conservative denials.
	AuthzLookupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "authz_lookup_failures_total",
			Help: "Total number of failed tenancy membership lookups",
		},
	)

	// AuditDroppedTotal counts audit records dropped because the sink
	// buffer was full.
	AuditDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_records_dropped_total",
			Help: "Total number of audit records dropped by the async sink",
		},
	)
)
