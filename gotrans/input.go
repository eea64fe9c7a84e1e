package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// readInput returns the raw sequence for the command line token. "-"
// is the standard input, a name of an existing file is replaced by the
// file content, anything else is taken as a sequence.
func readInput(token string, stdin io.Reader) (string, error) {
	if token == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		log.Debugf("Read %d bytes from standard input", len(b))
		return string(b), nil
	}

	fi, err := os.Stat(token)
	switch {
	case err == nil && fi.IsDir():
		return "", fmt.Errorf("%s is a directory", token)
	case err == nil:
		b, err := os.ReadFile(token)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", token, err)
		}
		log.Debugf("Read %d bytes from %s", len(b), token)
		return string(b), nil
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Errorf("reading %s: %w", token, err)
	}

	log.Debug("Input is not a file, using it as a sequence")
	return token, nil
}
