package router

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Signer is the opaque signing capability the Router attaches to every
// outgoing state-channel message: a stable public key plus a sign
// function. It is shared read-only across the Router's lifetime; callers
// never re-sign a message that has already left the main loop.
type Signer interface {
	PublicKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// ed25519Signer is the only Signer implementation this module ships: a
// process-local ed25519 keypair loaded from a file (or generated fresh if
// the file is absent, so a development instance can start without
// pre-provisioning a key).
type ed25519Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewSignerFromFile loads a 64-byte raw ed25519 private key from path. If
// path is empty, a fresh keypair is generated and held only in memory --
// useful for local testing, unsuitable for production since the public
// key will not match any persisted identity.
func NewSignerFromFile(path string) (Signer, error) {
	if path == "" {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.Wrap(err, "generate ed25519 keypair")
		}
		return &ed25519Signer{priv: priv, pub: pub}, nil
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read signer key file")
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("signer: key file %s: expected %d bytes, got %d", path, ed25519.PrivateKeySize, len(raw))
	}

	priv := ed25519.PrivateKey(raw)
	return &ed25519Signer{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

func (s *ed25519Signer) PublicKey() []byte {
	out := make([]byte, len(s.pub))
	copy(out, s.pub)
	return out
}

func (s *ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, msg), nil
}
