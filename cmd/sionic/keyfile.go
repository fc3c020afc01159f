package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// loadKeyFile reads the key=/nonce= hex lines produced by keygenCommand.
func loadKeyFile(path string) (key, nonce []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "key="):
			key, err = hex.DecodeString(strings.TrimPrefix(line, "key="))
			if err != nil {
				return nil, nil, fmt.Errorf("parsing key: %w", err)
			}
		case strings.HasPrefix(line, "nonce="):
			nonce, err = hex.DecodeString(strings.TrimPrefix(line, "nonce="))
			if err != nil {
				return nil, nil, fmt.Errorf("parsing nonce: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if key == nil {
		return nil, nil, fmt.Errorf("%s: missing key= line", path)
	}
	if nonce == nil {
		return nil, nil, fmt.Errorf("%s: missing nonce= line", path)
	}
	return key, nonce, nil
}
