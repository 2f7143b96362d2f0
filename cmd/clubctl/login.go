package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the club management server",
	Long: `Authenticate with the club management server and store the bearer
token for future requests.

Examples:
  # Interactive login (prompts for credentials)
  clubctl login

  # Login with the email preset
  clubctl login --email admin@club.example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := loginEmail
	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(input)
	}

	password := loginPassword
	if password == "" {
		fmt.Print("Password: ")
		passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = string(passBytes)
	}

	client, err := getUnauthenticatedClient()
	if err != nil {
		return err
	}

	resp, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess, err := getSession()
	if err != nil {
		return err
	}
	if err := sess.SaveLogin(resp.Token, &resp.User); err != nil {
		return err
	}

	notifier.Successf("Logged in as %s (%s)", resp.User.Nombre, resp.User.Email)
	return nil
}
