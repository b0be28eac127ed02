package chapa

import (
	"crypto/des"
	"encoding/base64"
)

// EncryptPayload encrypts a card payload the way the charge encryption
// endpoint expects: 3DES in ECB mode with PKCS7 padding, base64 encoded.
// The encryption key comes from the dashboard and is 24 bytes long.
func EncryptPayload(data, encryptionKey string) (string, error) {
	if encryptionKey == "" {
		return "", NewValidationError("encryption_key", "is required")
	}
	if len(encryptionKey) != 24 {
		return "", NewValidationError("encryption_key", "must be 24 bytes for 3DES")
	}

	block, err := des.NewTripleDESCipher([]byte(encryptionKey))
	if err != nil {
		return "", NewValidationError("encryption_key", err.Error())
	}

	plaintext := pkcs7Pad([]byte(data), block.BlockSize())
	ciphertext := make([]byte, len(plaintext))
	for offset := 0; offset < len(plaintext); offset += block.BlockSize() {
		block.Encrypt(ciphertext[offset:], plaintext[offset:])
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}
