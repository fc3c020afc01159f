package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pzverkov/sionic/pkg/stream"
)

func decryptCommand() {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	keyPath := fs.String("key", "", "Path to a key file produced by 'sionic keygen'")
	aad := fs.String("aad", "", "Associated data the stream was sealed with (optional)")
	cipherSuite := fs.String("cipher", "aes-gcm", "Cipher suite: aes-gcm or chacha20")
	bufSize := fs.Int("buf-size", 0, "Fragment size in bytes; must match the value used to encrypt (0 = default)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus/health endpoints on this address while opening (optional)")

	fs.Usage = func() {
		fmt.Println(`USAGE: sionic decrypt --key <file> [options] < ciphertext > plaintext

Open a fragmented AEAD stream from stdin, writing recovered plaintext to
stdout. Fails with an authentication error if the stream was tampered
with or the key, nonce, AAD, or buffer size don't match what it was
sealed with.

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

	dec, err := stream.NewDecWriter(os.Stdout, key, nonce, []byte(*aad), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := io.Copy(dec, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: authentication failed: %v\n", err)
		os.Exit(1)
	}
	if err := dec.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: authentication failed: %v\n", err)
		os.Exit(1)
	}
}
