/*
Package seal implements value-level encryption at rest for the wallet vault.
The cipher is an AEAD primitive; the storage key of the value is used as the
associated data so a ciphertext cannot be replayed under another key.
*/
package seal

import (
	"bytes"

	"github.com/google/tink/go/aead"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/tink"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Cipher seals and opens storage values with an AEAD primitive built from a
// tink keyset.
type Cipher struct {
	primitive tink.AEAD
}

// NewKeyset generates a fresh AES256-GCM keyset and returns it serialized as
// cleartext JSON. The caller owns keeping the result secret.
func NewKeyset() (data []byte, err error) {
	defer err2.Handle(&err, "new seal keyset")

	kh := try.To1(keyset.NewHandle(aead.AES256GCMKeyTemplate()))

	buf := bytes.Buffer{}
	try.To(insecurecleartextkeyset.Write(kh, keyset.NewJSONWriter(&buf)))

	return buf.Bytes(), nil
}

// NewCipher builds a Cipher from a cleartext JSON keyset, see NewKeyset.
func NewCipher(keysetJSON []byte) (c *Cipher, err error) {
	defer err2.Handle(&err, "new seal cipher")

	kh := try.To1(insecurecleartextkeyset.Read(
		keyset.NewJSONReader(bytes.NewReader(keysetJSON))))
	primitive := try.To1(aead.New(kh))

	return &Cipher{primitive: primitive}, nil
}

func (c *Cipher) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	return c.primitive.Encrypt(plaintext, associatedData)
}

func (c *Cipher) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	return c.primitive.Decrypt(ciphertext, associatedData)
}
