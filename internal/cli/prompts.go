package cli

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

// promptPassphrase prompts for a passphrase with hidden input and confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassphrase() ([]byte, error) {
	passphrase, err := promptHidden("Enter passphrase (leave empty for none): ")
	if err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return passphrase, nil
	}

	confirm, err := promptHidden("Confirm passphrase: ")
	if err != nil {
		zero(passphrase)
		return nil, err
	}
	defer zero(confirm)

	if string(passphrase) != string(confirm) {
		zero(passphrase)
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "passphrases do not match")
	}

	return passphrase, nil
}

// promptHidden reads a line of hidden terminal input.
func promptHidden(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)
	value, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return value, nil
}

// zero overwrites a byte slice with zeroes.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
