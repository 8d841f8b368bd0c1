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
	"context"
	"fmt"

	"github.com/expertly/expertly/internal/api/service"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage platform users",
}

var userListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List platform users",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepos()
		if err != nil {
			return err
		}

		users, total, err := service.NewUserService(r.user).GetUserList(pageNum, pageSize)
		if err != nil {
			return err
		}

		fmt.Printf("%-34s %-20s %-12s %-8s\n", "USER ID", "USERNAME", "ROLE", "ENABLED")
		for _, u := range users {
			fmt.Printf("%-34s %-20s %-12s %-8d\n", u.UserId, u.Username, u.PlatformRole, u.IsEnabled)
		}
		fmt.Printf("total: %d\n", total)
		return nil
	},
}

var userSetRoleCmd = &cobra.Command{
	Use:   "set-role <userId> <role>",
	Short: "Change a user's platform role (user, moderator, admin, owner)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepos()
		if err != nil {
			return err
		}

		userService := service.NewUserService(r.user)
		if err := userService.SetPlatformRole(context.Background(), args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("user %s role set to %s\n", args[0], args[1])
		return nil
	},
}

var (
	pageNum  int
	pageSize int
)

func init() {
	userListCmd.Flags().IntVar(&pageNum, "page", 1, "page number")
	userListCmd.Flags().IntVar(&pageSize, "size", 20, "page size")
	userCmd.AddCommand(userListCmd, userSetRoleCmd)
}
