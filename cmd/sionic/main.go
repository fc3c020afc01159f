// Command sionic encrypts and decrypts streams through a fragmented AEAD
// channel, and benchmarks the underlying primitives and key exchange.
package main

import (
	"fmt"
	"os"

	pkgversion "github.com/pzverkov/sionic/pkg/version"
)

var (
	version   = ""
	buildTime = "unknown"
	gitCommit = "unknown"
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "encrypt":
		encryptCommand()
	case "decrypt":
		decryptCommand()
	case "keygen":
		keygenCommand()
	case "bench":
		benchCommand()
	case "version":
		fmt.Printf("sionic version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sionic - fragmented authenticated-encryption streaming tool

USAGE:
    sionic <command> [options]

COMMANDS:
    encrypt   Seal stdin to stdout as a fragmented AEAD stream
    decrypt   Open a fragmented AEAD stream from stdin to stdout
    keygen    Generate a random (key, nonce) pair for encrypt/decrypt
    bench     Run performance benchmarks
    version   Print version information
    help      Show this help message

Run 'sionic <command> --help' for more information on a command.

EXAMPLES:
    # Generate a key and nonce
    sionic keygen > secret.key

    # Encrypt a file
    sionic encrypt --key secret.key < plain.txt > sealed.bin

    # Decrypt it back
    sionic decrypt --key secret.key < sealed.bin > plain.txt

    # Run throughput benchmarks
    sionic bench --throughput --size 100MB

    # Encrypt while serving Prometheus/health endpoints
    sionic encrypt --key secret.key --metrics-addr :9090 < plain.txt > sealed.bin

PROJECT:
    sionic - a length-preserving, online streaming authenticated-encryption
    channel built on AES-256-GCM or ChaCha20-Poly1305, with an optional
    hybrid ML-KEM-1024 + X25519 key exchange for agreeing on channel keys.`)
}
