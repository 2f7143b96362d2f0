package main

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential",
	Long:  `Remove the stored bearer token and cached user info.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := getSession()
		if err != nil {
			return err
		}
		if _, ok := sess.Token(); !ok {
			notifier.Successf("Not logged in")
			return nil
		}
		if err := sess.Clear(); err != nil {
			return err
		}
		notifier.Successf("Logged out")
		return nil
	},
}
