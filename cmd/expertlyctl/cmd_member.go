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

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/internal/api/service"
	"github.com/spf13/cobra"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage expert tenant memberships",
}

var memberListCmd = &cobra.Command{
	Use:   "ls <expertId>",
	Short: "List members of an expert tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepos()
		if err != nil {
			return err
		}

		es := service.NewExpertService(r.expert, r.membership, r.user)
		members, total, err := es.ListMembers(args[0], 1, 1000)
		if err != nil {
			return err
		}

		fmt.Printf("%-34s %-10s %-34s\n", "USER ID", "ROLE", "GRANTED BY")
		for _, m := range members {
			grantedBy := ""
			if m.GrantedBy != nil {
				grantedBy = *m.GrantedBy
			}
			fmt.Printf("%-34s %-10s %-34s\n", m.UserId, m.Role, grantedBy)
		}
		fmt.Printf("total: %d\n", total)
		return nil
	},
}

var memberGrantCmd = &cobra.Command{
	Use:   "grant <expertId> <userId> <role>",
	Short: "Grant a user a role in an expert tenant (member, editor, owner)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepos()
		if err != nil {
			return err
		}

		es := service.NewExpertService(r.expert, r.membership, r.user)
		_, err = es.AddMember(args[0], "expertlyctl", &model.AddMemberReq{UserId: args[1], Role: args[2]})
		if err != nil {
			return err
		}

		fmt.Printf("granted %s role %s in expert %s\n", args[1], args[2], args[0])
		return nil
	},
}

var memberRevokeCmd = &cobra.Command{
	Use:   "revoke <expertId> <userId>",
	Short: "Revoke a user's membership in an expert tenant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepos()
		if err != nil {
			return err
		}

		es := service.NewExpertService(r.expert, r.membership, r.user)
		if err := es.RemoveMember(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("revoked %s from expert %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	memberCmd.AddCommand(memberListCmd, memberGrantCmd, memberRevokeCmd)
}
