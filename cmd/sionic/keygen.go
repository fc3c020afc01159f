package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/pzverkov/sionic/internal/constants"
	"github.com/pzverkov/sionic/pkg/crypto"
)

func keygenCommand() {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println(`USAGE: sionic keygen [options]

Generate a random 32-byte key and 8-byte nonce prefix, printed as two
hex lines ("key=..." and "nonce=...") suitable for the --key file
accepted by encrypt/decrypt.

OPTIONS:`)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	key := make([]byte, constants.KeyLen)
	nonce := make([]byte, constants.UserNonceLen)
	if err := crypto.SecureRandom(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := crypto.SecureRandom(nonce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("key=%s\n", hex.EncodeToString(key))
	fmt.Printf("nonce=%s\n", hex.EncodeToString(nonce))
}
