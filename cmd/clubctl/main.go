package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "clubctl",
	Short: "clubctl - Administration CLI for the club management backend",
	Long:  `clubctl manages the categories, permissions, roles and users of a sports-club management server.`,
	Example: `  # Authenticate against the backend
  clubctl login --email admin@club.example.com

  # Browse and filter categories
  clubctl categorias list --genero femenino --estado activa
  clubctl categorias list --edad-minima 10 --edad-maxima 15

  # Replace a role's permission set
  clubctl roles asignar 7 --toggle 1 --toggle 4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "session", Title: "Session Commands:"},
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "access", Title: "Access Control Commands:"},
	)

	loginCmd.GroupID = "session"
	logoutCmd.GroupID = "session"
	whoamiCmd.GroupID = "session"

	categoriasCmd.GroupID = "catalog"

	permisosCmd.GroupID = "access"
	rolesCmd.GroupID = "access"
	usuariosCmd.GroupID = "access"

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(categoriasCmd)
	rootCmd.AddCommand(permisosCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(usuariosCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		notifier.Errorf("%v", err)
		os.Exit(1)
	}
}
