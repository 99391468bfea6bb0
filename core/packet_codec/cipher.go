package packet_codec

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/orbit-w/mc-net/core/packet_codec/codec_err"
)

/*
   @Author: orbit-w
   @File: cipher
   @2024 4月 周六 15:30
*/

// cipherKeySize is the AES-128 key and IV length.
const cipherKeySize = 16

// Cipher is a single-direction AES-128/CFB8 stream cipher. CFB8
// advances its feedback register one byte per processed byte, so a
// bulk call over a slice produces the same output as one call per
// byte. A Cipher created for encryption must only Encrypt and one
// created for decryption must only Decrypt; the mismatched call is a
// programming error and panics.
type Cipher struct {
	block      cipher.Block
	reg        [cipherKeySize]byte
	ks         [cipherKeySize]byte
	forEncrypt bool
}

// NewCipher builds a CFB8 cipher from a 16-byte key and 16-byte IV.
func NewCipher(key, iv []byte, forEncryption bool) (*Cipher, error) {
	if len(iv) != cipherKeySize {
		return nil, codec_err.BadKeySize("iv", len(iv))
	}
	if len(key) != cipherKeySize {
		return nil, codec_err.BadKeySize("key", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	c := &Cipher{
		block:      block,
		forEncrypt: forEncryption,
	}
	copy(c.reg[:], iv)
	return c, nil
}

// Encrypt encrypts data in place.
func (c *Cipher) Encrypt(data []byte) {
	if !c.forEncrypt {
		panic("packet_codec: Encrypt called on a decryption cipher")
	}
	for i := range data {
		c.block.Encrypt(c.ks[:], c.reg[:])
		out := data[i] ^ c.ks[0]
		data[i] = out
		c.shift(out)
	}
}

// Decrypt decrypts data in place.
func (c *Cipher) Decrypt(data []byte) {
	if c.forEncrypt {
		panic("packet_codec: Decrypt called on an encryption cipher")
	}
	for i := range data {
		c.block.Encrypt(c.ks[:], c.reg[:])
		in := data[i]
		data[i] = in ^ c.ks[0]
		// the ciphertext byte feeds the register in both directions
		c.shift(in)
	}
}

func (c *Cipher) shift(feed byte) {
	copy(c.reg[:], c.reg[1:])
	c.reg[cipherKeySize-1] = feed
}

// setupCipher installs a new cipher into slot, failing if one is
// already present.
func setupCipher(slot **Cipher, key, iv []byte, forEncryption bool) error {
	if *slot != nil {
		return codec_err.ErrAlreadyEnabled
	}
	c, err := NewCipher(key, iv, forEncryption)
	if err != nil {
		return err
	}
	*slot = c
	return nil
}
