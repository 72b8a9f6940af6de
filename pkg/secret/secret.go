// Package secret sella y abre valores sensibles (contraseñas de cifrado de disco de los equipos)
// con NaCl secretbox antes de guardarlos en la base de datos.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrMalformed indica que el valor sellado no tiene el formato esperado o fue alterado.
var ErrMalformed = errors.New("secret: valor sellado inválido")

// Box sella/abre valores con una clave simétrica derivada de la passphrase configurada.
type Box struct {
	key [32]byte
}

// NewBox deriva la clave de 32 bytes (SHA-256) a partir de la passphrase.
func NewBox(passphrase string) (*Box, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("secret: passphrase vacía")
	}
	return &Box{key: sha256.Sum256([]byte(passphrase))}, nil
}

// Seal devuelve base64(nonce || caja). Un texto vacío se guarda vacío.
func (b *Box) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secret: generar nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open invierte Seal.
func (b *Box) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrMalformed
	}
	return string(plain), nil
}
