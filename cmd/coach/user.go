// ABOUTME: CLI commands for managing accounts.
// ABOUTME: Supports add and list; the mobile app normally registers over the API.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/auth"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
)

var userPassword string

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"u"},
	Short:   "Manage accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Create an account",
	Long: `Create an account with an email and password.

Example:
  coach user add me@example.com --password hunter22`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(userPassword)
		if err != nil {
			return err
		}

		u := models.NewUser(args[0], hash)
		if err := repo.CreateUser(u); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("%s is already registered", u.Email)
			}
			return fmt.Errorf("failed to create account: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Created account %s", u.Email))
		fmt.Fprintf(out, "  ID: %s\n", u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := repo.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No accounts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, u := range users {
			status := color.YellowString("not onboarded")
			if u.Onboarded {
				status = color.GreenString("onboarded")
			}
			fmt.Fprintf(out, "%s %s %s\n", faint.Sprint(u.ID.String()[:8]), padRight(u.Email, 32), status)
		}
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "account password")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}
