package p256ecdh

// Scalar holds a private key value in the same ten-limb, 26-bit radix
// as FieldElement. It is kept as a distinct type even though the
// underlying layout matches, because a scalar multiplies points
// rather than field elements and is generated/clamped differently —
// mirroring the teacher's separate Scalar type even though this
// engine has no independent group-order reduction to perform (see
// DESIGN.md's Open Question decisions).
type Scalar [10]int32

// fromBytes reads 32 big-endian bytes into the scalar's limbs.
func (s *Scalar) fromBytes(b []byte) {
	(*FieldElement)(s).fromBytes(b)
}

// toBytes emits the scalar as 32 big-endian bytes.
func (s *Scalar) toBytes(out []byte) {
	(*FieldElement)(s).toBytes(out)
}

// clear zeroes a scalar's limbs once it is no longer needed.
func (s *Scalar) clear() {
	*s = Scalar{}
}

// genK draws a private scalar from rnd and applies the reference C's
// SIMPLIFY clamp (sp_256_ecc_gen_k_10): rather than rejection-sampling
// until the value falls under order-2, it only special-cases the rare
// top-limb-saturated draw, and nudges a zero low limb up to 1. This
// trades a (cryptographically negligible) non-uniformity in the
// output distribution for a single-draw generation step with no retry
// loop —
// acceptable for ephemeral ECDH scalars; see DESIGN.md for the
// reasoning behind keeping this instead of rejection sampling.
func genK(rnd RandomSource) Scalar {
	var buf [32]byte
	rnd.FillRandom(buf[:])

	var k Scalar
	k.fromBytes(buf[:])

	if k[9] >= 0x3fffff {
		k[9] = 0x3ffffe
	}
	if k[0] == 0 {
		k[0] = 1
	}
	return k
}
