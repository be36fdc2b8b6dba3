package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/admin"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/security"
)

const generatedPasswordLength = 16

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an active administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		password, _ := cmd.Flags().GetString("password")
		generate, _ := cmd.Flags().GetBool("generate-password")

		switch {
		case generate:
			generated, err := security.GenerateTempPassword(generatedPasswordLength)
			if err != nil {
				return err
			}
			password = generated
		case password == "":
			entered, err := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).secret("Password: ")
			if err != nil {
				return err
			}
			password = entered
		}

		svc, closeDB, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		user, err := svc.CreateAdmin(cmd.Context(), admin.CreateAdminInput{
			Name:        strings.TrimSpace(name),
			Email:       email,
			PhoneNumber: phone,
			Password:    password,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Admin user created successfully")
		fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nphone: %s\n", user.ID, user.PhoneNumber)
		if generate {
			fmt.Fprintf(cmd.OutOrStdout(), "temporary password: %s\n", password)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	createAdminCmd.Flags().String("name", "", "display name")
	createAdminCmd.Flags().String("email", "", "email address (optional)")
	createAdminCmd.Flags().String("phone", "", "phone number used to sign in")
	createAdminCmd.Flags().String("password", "", "password; prompted when omitted")
	createAdminCmd.Flags().Bool("generate-password", false, "generate a random password and print it once")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("phone")
	createAdminCmd.MarkFlagsMutuallyExclusive("password", "generate-password")
}
