package p256ecdh

// scalarMul computes k*g and returns the result in affine coordinates.
// Ported from the reference C's sp_256_ecc_mulmod_10: a constant-time,
// left-to-right double-and-add ladder that walks k's 256 bits from
// the most significant limb's top bit down to the least significant
// limb's bottom bit, maintaining the classic two-slot invariant
// t[0] = (bits seen so far)*g, t[1] = t[0] + g, and writing each
// iteration's add/double results back into the slot selected by the
// current bit so that no slot's identity reveals which bit was 1 or 0.
func scalarMul(k *Scalar, g *JacobianPoint) GroupElementAffine {
	var t [2]JacobianPoint
	t[0] = JacobianPoint{infinity: true}
	t[1] = g.montgomeryForm()

	i := 9
	c := 22
	n := k[i] << uint(26-c)
	i--
	for {
		if c == 0 {
			if i == -1 {
				break
			}
			n = k[i]
			i--
			c = 26
		}

		y := int((n >> 25) & 1)
		n <<= 1

		other := 1 - y
		pointAdd(&t[other], &t[0], &t[1])
		pointDouble(&t[y], &t[y])

		c--
	}

	return mapToAffine(&t[0])
}

// baseScalarMul computes k*G, where G is the P-256 generator point.
// Ported from the reference C's sp_256_ecc_mulmod_base_10.
func baseScalarMul(k *Scalar) GroupElementAffine {
	g := p256Base
	return scalarMul(k, &g)
}
