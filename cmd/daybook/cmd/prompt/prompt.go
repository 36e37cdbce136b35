// Package prompt holds the interactive helpers the commands share: password
// input without echo and the unlock-on-demand flow.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"daybook/internal/app"
)

// ReadPassword reads a line from the terminal without echoing it.
func ReadPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

// ReadNewPassword asks twice and rejects mismatches and short passwords.
func ReadNewPassword() (string, error) {
	password, err := ReadPassword("Enter password: ")
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	return password, nil
}

// Confirm asks a yes/no question; anything but y/yes is no.
func Confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// EnsureKey unlocks the vault interactively when the command needs the
// session key. A no-op when encryption is not active or the key is already
// cached.
func EnsureKey(a *app.App) error {
	if !a.Cfg.EncryptionActive() || a.Key() != nil {
		return nil
	}

	label := "Password: "
	if hint := a.Cfg.Security.PasswordHint; hint != "" {
		label = fmt.Sprintf("Password (hint: %s): ", hint)
	}
	password, err := ReadPassword(label)
	if err != nil {
		return err
	}
	return a.Unlock(password)
}
