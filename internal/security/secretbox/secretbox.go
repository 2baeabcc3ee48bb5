// Package secretbox encrypts small secrets (DSNs, provider client secrets)
// with a master key so they can live in config files as "enc:" values.
package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	masterKeyEnvVar = "SECRETBOX_MASTER_KEY"
	keyLength       = 32
	nonceLength     = 24
	sep             = "|" // base64(nonce)|base64(ciphertext)
)

var (
	masterKey     *[keyLength]byte
	masterKeyOnce sync.Once
	loadErr       error
	mu            sync.RWMutex
)

// ErrDecryptFailed is returned when the ciphertext fails authentication.
var ErrDecryptFailed = errors.New("secretbox: decryption failed")

// ensureLoaded reads the master key from SECRETBOX_MASTER_KEY (base64) once.
func ensureLoaded() error {
	masterKeyOnce.Do(func() {
		kb64 := strings.TrimSpace(os.Getenv(masterKeyEnvVar))
		if kb64 == "" {
			loadErr = fmt.Errorf("%s not set; generate one with: openssl rand -base64 32", masterKeyEnvVar)
			return
		}
		k, err := base64.StdEncoding.DecodeString(kb64)
		if err != nil {
			loadErr = fmt.Errorf("decode %s: %w", masterKeyEnvVar, err)
			return
		}
		if len(k) != keyLength {
			loadErr = fmt.Errorf("%s must decode to %d bytes, got %d", masterKeyEnvVar, keyLength, len(k))
			return
		}
		mu.Lock()
		masterKey = new([keyLength]byte)
		copy(masterKey[:], k)
		mu.Unlock()
	})
	return loadErr
}

// IsReady reports whether the master key is loaded. Useful for config checks.
func IsReady() bool {
	mu.RLock()
	defer mu.RUnlock()
	return masterKey != nil
}

// Encrypt seals plainText and returns base64(nonce)|base64(ciphertext).
func Encrypt(plainText string) (string, error) {
	if err := ensureLoaded(); err != nil {
		return "", err
	}

	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secretbox: nonce: %w", err)
	}

	mu.RLock()
	key := masterKey
	mu.RUnlock()

	ct := secretbox.Seal(nil, []byte(plainText), &nonce, key)
	return base64.StdEncoding.EncodeToString(nonce[:]) + sep + base64.StdEncoding.EncodeToString(ct), nil
}

// Decrypt opens a value produced by Encrypt.
func Decrypt(value string) (string, error) {
	if err := ensureLoaded(); err != nil {
		return "", err
	}

	parts := strings.SplitN(value, sep, 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("secretbox: malformed value, expected nonce%sciphertext", sep)
	}
	nb, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(nb) != nonceLength {
		return "", fmt.Errorf("secretbox: malformed nonce")
	}
	ct, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("secretbox: malformed ciphertext")
	}

	var nonce [nonceLength]byte
	copy(nonce[:], nb)

	mu.RLock()
	key := masterKey
	mu.RUnlock()

	pt, ok := secretbox.Open(nil, ct, &nonce, key)
	if !ok {
		return "", ErrDecryptFailed
	}
	return string(pt), nil
}

// UnsafeResetForTests clears the cached master key so tests can swap keys.
func UnsafeResetForTests() {
	mu.Lock()
	defer mu.Unlock()
	masterKey = nil
	masterKeyOnce = sync.Once{}
	loadErr = nil
}
