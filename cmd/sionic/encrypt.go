package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pzverkov/sionic/pkg/stream"
)

func encryptCommand() {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	keyPath := fs.String("key", "", "Path to a key file produced by 'sionic keygen'")
	aad := fs.String("aad", "", "Associated data bound to the stream (optional)")
	cipherSuite := fs.String("cipher", "aes-gcm", "Cipher suite: aes-gcm or chacha20")
	bufSize := fs.Int("buf-size", 0, "Fragment size in bytes (0 = default)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus/health endpoints on this address while sealing (optional)")

	fs.Usage = func() {
		fmt.Println(`USAGE: sionic encrypt --key <file> [options] < plaintext > ciphertext

Seal stdin as a fragmented AEAD stream, written to stdout.

OPTIONS:`)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	if *keyPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --key is required")
		os.Exit(1)
	}

	key, nonce, err := loadKeyFile(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	suite, err := parseCipherSuite(*cipherSuite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := []stream.Option{stream.WithCipherSuite(suite)}
	if *bufSize > 0 {
		opts = append(opts, stream.WithBufferSize(*bufSize))
	}
	if *metricsAddr != "" {
		opts = append(opts, stream.WithMetrics(startObservability(*metricsAddr)))
	}

	enc, err := stream.NewEncWriter(os.Stdout, key, nonce, []byte(*aad), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := io.Copy(enc, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing stream: %v\n", err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: closing stream: %v\n", err)
		os.Exit(1)
	}
}
