package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"token-wallet-service/pkg/apperror"
)

// AESCipherService implements ports.CipherService using AES-256-CBC with a
// fresh random IV per call. The envelope format is hex(iv) + ":" + hex(ct),
// matching the key material already at rest in existing wallet documents.
type AESCipherService struct {
	key []byte // 32-byte key for AES-256
}

// NewAESCipherService creates the cipher from the configured passphrase.
// The passphrase must be exactly 32 bytes; anything else is a fatal
// configuration error at startup, never a silent truncation or pad.
func NewAESCipherService(secret string) (*AESCipherService, error) {
	if len(secret) != 32 {
		return nil, fmt.Errorf("encryption secret must be exactly 32 bytes, got %d", len(secret))
	}
	return &AESCipherService{key: []byte(secret)}, nil
}

// Encrypt encrypts plaintext and returns the "ivhex:cthex" envelope.
func (s *AESCipherService) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt opens an "ivhex:cthex" envelope. It fails on a missing delimiter,
// bad hex, wrong IV length, misaligned ciphertext, or invalid padding
// (corrupted ciphertext or wrong key). Failures surface as SYS_002 so a
// corrupted key envelope is distinguishable from a generic internal error.
func (s *AESCipherService) Decrypt(envelope string) (string, error) {
	ivHex, ctHex, found := strings.Cut(envelope, ":")
	if !found {
		return "", apperror.ErrDecryption(fmt.Errorf("malformed envelope: missing delimiter"))
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", apperror.ErrDecryption(fmt.Errorf("decoding iv: %w", err))
	}
	if len(iv) != aes.BlockSize {
		return "", apperror.ErrDecryption(fmt.Errorf("iv must be %d bytes, got %d", aes.BlockSize, len(iv)))
	}

	ciphertext, err := hex.DecodeString(ctHex)
	if err != nil {
		return "", apperror.ErrDecryption(fmt.Errorf("decoding ciphertext: %w", err))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", apperror.ErrDecryption(fmt.Errorf("ciphertext length %d is not a positive multiple of the block size", len(ciphertext)))
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", apperror.ErrDecryption(fmt.Errorf("creating cipher: %w", err))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", apperror.ErrDecryption(err)
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
