package p256ecdh

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/rs/zerolog"
)

// RandomSource supplies cryptographically random bytes. It is the one
// imported collaborator this engine needs, modeled as an interface
// (rather than calling crypto/rand.Read directly everywhere) so tests
// can substitute a deterministic source for the fixed-vector checks —
// the Go-idiomatic analogue of the reference C's FIXED_SECRET debug
// toggle.
type RandomSource interface {
	FillRandom(buf []byte)
}

// CryptoRandSource is the default RandomSource, backed by crypto/rand.
type CryptoRandSource struct{}

// FillRandom fills buf with output from crypto/rand.Read, panicking on
// failure since the system CSPRNG is not expected to fail in practice
// and there is no sane fallback for a key-generation primitive.
func (CryptoRandSource) FillRandom(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic("p256ecdh: system random source failed: " + err.Error())
	}
}

// Engine bundles the construction-time collaborators this package
// needs: a random source and an optional debug-trace logger. It plays
// the same role the teacher's Context struct plays for secp256k1 —
// a value created once and passed (or held) around, never mutated
// mid-call — generalized to Go's functional-options idiom since this
// engine has no capability bitmask to speak of.
type Engine struct {
	random RandomSource
	logger *zerolog.Logger
}

// EngineOption configures an Engine constructed via NewEngine.
type EngineOption func(*Engine)

// WithRandomSource overrides the engine's random source; primarily
// useful in tests that need deterministic key material.
func WithRandomSource(r RandomSource) EngineOption {
	return func(e *Engine) { e.random = r }
}

// WithLogger attaches a debug-trace logger. Left nil (the default),
// tracing is a complete no-op — matching the reference C's SP_DEBUG
// macro being compiled out, without needing build tags.
func WithLogger(logger *zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine builds an Engine with the given options applied over the
// defaults (crypto/rand, no tracing).
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{random: CryptoRandSource{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultEngine is the zero-configuration engine used by the
// package-level free functions, so callers who don't need custom
// randomness or tracing never have to construct anything.
var DefaultEngine = &Engine{random: CryptoRandSource{}}

// trace logs a hex-encoded buffer snapshot if a logger is attached.
// Ported in spirit (not mechanism) from the reference C's dump_hex:
// called only at this file's boundary, never from the L0–L5
// arithmetic layers, so tracing can never perturb their timing.
func (e *Engine) trace(label string, buf []byte) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Debug().Str("field", label).Str("hex", hex.EncodeToString(buf)).Msg("p256ecdh trace")
}

// GenerateKeyPair draws a fresh private scalar and returns it
// alongside the corresponding public point (64 bytes, X || Y, big
// endian). Factored out of the reference C's
// curve_P256_compute_pubkey_and_premaster as its own operation per
// sp_ecc_make_key_256, so a caller that only needs an ephemeral
// keypair isn't forced to also run a point multiply against a dummy
// peer value.
func (e *Engine) GenerateKeyPair() (privateKey [32]byte, publicKey [64]byte) {
	k := genK(e.random)
	defer k.clear()

	pub := baseScalarMul(&k)
	pub.toBytes(&publicKey)

	k.toBytes(privateKey[:])
	e.trace("pubkey.x", publicKey[0:32])
	e.trace("pubkey.y", publicKey[32:64])
	return privateKey, publicKey
}

// GenerateKeyPair draws a key pair using DefaultEngine.
func GenerateKeyPair() (privateKey [32]byte, publicKey [64]byte) {
	return DefaultEngine.GenerateKeyPair()
}

// ComputePublicAndPremaster is the engine's single public entry
// point, ported from the reference C's
// curve_P256_compute_pubkey_and_premaster: it generates a fresh
// ephemeral key pair and immediately combines the new private scalar
// with the caller-supplied peer point to derive the premaster secret
// (the raw X coordinate of the shared point, with no hashing or KDF
// applied — that belongs to the record layer, an explicit Non-goal).
// This operation is total: malformed peerPublicKey input yields a
// well-defined, non-crashing (if cryptographically meaningless)
// output rather than an error.
func (e *Engine) ComputePublicAndPremaster(peerPublicKey [64]byte) (publicKey [64]byte, premaster [32]byte) {
	e.trace("peerkey.x", peerPublicKey[0:32])
	e.trace("peerkey.y", peerPublicKey[32:64])

	privateKey, publicKey := e.GenerateKeyPair()
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	var k Scalar
	k.fromBytes(privateKey[:])
	defer k.clear()

	peerPoint := pointFromAffineBytes(&peerPublicKey)
	shared := scalarMul(&k, &peerPoint)
	shared.x.toBytes(premaster[:])

	e.trace("premaster", premaster[:])
	return publicKey, premaster
}

// ComputePublicAndPremaster runs the engine's entry point against
// DefaultEngine.
func ComputePublicAndPremaster(peerPublicKey [64]byte) (publicKey [64]byte, premaster [32]byte) {
	return DefaultEngine.ComputePublicAndPremaster(peerPublicKey)
}

// PeerPointLooksValid performs a cheap, best-effort sanity check on a
// caller-supplied peer point: that its coordinates are canonically
// reduced (each strictly less than the field modulus) and that it is
// not the all-zero junk pattern a zeroed or uninitialized buffer would
// produce. It is explicitly NOT a full on-curve check — no
// inversion, no curve-equation evaluation — and ComputePublicAndPremaster
// never calls it; the core stays total and unconditional. The
// coordinate-range comparison uses the field layer's mask-accumulating
// cmp, and the all-zero test uses crypto/subtle.ConstantTimeCompare.
func PeerPointLooksValid(peerPublicKey [64]byte) bool {
	var x, y FieldElement
	x.fromBytes(peerPublicKey[0:32])
	y.fromBytes(peerPublicKey[32:64])

	if cmp(&x, &p256Mod) >= 0 || cmp(&y, &p256Mod) >= 0 {
		return false
	}

	var zero [64]byte
	if subtle.ConstantTimeCompare(peerPublicKey[:], zero[:]) == 1 {
		return false
	}
	return true
}
