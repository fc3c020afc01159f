// Package stream implements the fragmented AEAD channel: an
// encrypting sink and a decrypting sink that turn an arbitrarily long
// byte stream into (respectively out of) a sequence of independently
// authenticated fixed-size fragments, using constant memory.
//
// Plaintext is split into fragments of up to B bytes (16 KiB by
// default); each fragment is sealed under a nonce built from an 8-byte
// caller-supplied prefix and a 32-bit little-endian counter, and under
// an associated-data header derived once at construction from the
// caller's own associated data. The result is a pure concatenation of
// ciphertext fragments — no length prefixes, no magic bytes — so
// ciphertext length is always exactly plaintext length plus one 16-byte
// tag per fragment.
//
// Both sinks require an explicit Close to emit the terminal fragment;
// a channel dropped open (neither closed nor already in an error state)
// panics, since silently finalizing would either truncate the stream or
// mask a failed final seal/open.
package stream
