package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errPasswordMismatch = errors.New("passwords do not match")

// promptNewPassword asks for the password twice with terminal echo off.
func promptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}
	restore, err := disableEcho(stdin)
	if err != nil {
		return "", fmt.Errorf("disable terminal echo: %w", err)
	}
	defer restore()

	reader := bufio.NewReader(stdin)
	fmt.Fprint(out, "New password: ")
	password, err := readLine(reader)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}

	fmt.Fprint(out, "Repeat password: ")
	confirmation, err := readLine(reader)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}

	if password != confirmation {
		return "", errPasswordMismatch
	}
	return password, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
