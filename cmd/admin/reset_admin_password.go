package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetAdminPasswordCmd = &cobra.Command{
	Use:   "reset-admin-password",
	Short: "Replace the password of an existing administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")

		svc, closeDB, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		if _, err := svc.LookupAdmin(cmd.Context(), phone); err != nil {
			return err
		}

		prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		newPassword, err := prompt.secret("New password: ")
		if err != nil {
			return err
		}
		confirm, err := prompt.secret("Confirm new password: ")
		if err != nil {
			return err
		}

		if err := svc.ResetAdminPassword(cmd.Context(), phone, newPassword, confirm); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Admin password reset successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetAdminPasswordCmd)
	resetAdminPasswordCmd.Flags().String("phone", "", "phone number of the administrator")
	_ = resetAdminPasswordCmd.MarkFlagRequired("phone")
}
