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

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var auditSubject string

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the authorization audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent authorization decisions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepos()
		if err != nil {
			return err
		}

		records, total, err := r.audit.ListAudit(0, 50, auditSubject)
		if err != nil {
			return err
		}

		fmt.Printf("%-20s %-34s %-24s %-8s %-20s %s\n",
			"DECIDED AT", "SUBJECT", "SCOPE", "ALLOWED", "REASON", "TRACE")
		for _, rec := range records {
			fmt.Printf("%-20s %-34s %-24s %-8t %-20s %s\n",
				rec.DecidedAt.Format(time.DateTime), rec.SubjectUserId, rec.Scope,
				rec.Allowed, rec.Reason, rec.TraceId)
		}
		fmt.Printf("total: %d\n", total)
		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditSubject, "subject", "", "filter by subject user id")
	auditCmd.AddCommand(auditListCmd)
}
