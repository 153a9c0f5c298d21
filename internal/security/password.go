package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// PasswordAlphabet leaves out characters that are easy to misread.
	PasswordAlphabet = upperAlphabet + lowerAlphabet + digitAlphabet

	MinGeneratedPasswordLength = 8
)

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// GeneratePassword returns a random password from PasswordAlphabet holding at
// least one upper case letter, one lower case letter and one digit. Lengths
// below MinGeneratedPasswordLength are raised to it.
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedPasswordLength {
		length = MinGeneratedPasswordLength
	}

	password := make([]byte, 0, length)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		char, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}
	for len(password) < length {
		char, err := randomChar(PasswordAlphabet)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	// Fisher-Yates so the required classes do not always lead.
	for index := len(password) - 1; index > 0; index-- {
		swap, err := randomIndex(index + 1)
		if err != nil {
			return "", err
		}
		password[index], password[swap] = password[swap], password[index]
	}
	return string(password), nil
}

func randomChar(alphabet string) (byte, error) {
	if len(alphabet) == 0 {
		return 0, errEmptyAlphabet
	}
	index, err := randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[index], nil
}

// randomIndex is uniform over [0, n).
func randomIndex(n int) (int, error) {
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(value.Int64()), nil
}
