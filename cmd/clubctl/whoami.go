package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Long:  `Ask the server which account the stored token belongs to.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getAuthenticatedClient()
		if err != nil {
			return err
		}

		user, err := client.Me(cmd.Context())
		if err != nil {
			return actionError(err, "fetch account info")
		}

		name := user.Nombre
		if user.Apellido != "" {
			name += " " + user.Apellido
		}
		fmt.Printf("Name:   %s\n", name)
		fmt.Printf("Email:  %s\n", user.Email)
		fmt.Printf("Status: %s\n", user.Estado)
		if len(user.Roles) > 0 {
			names := make([]string, 0, len(user.Roles))
			for _, r := range user.Roles {
				names = append(names, r.Nombre)
			}
			fmt.Printf("Roles:  %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}
