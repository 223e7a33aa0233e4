package p256ecdh

// JacobianPoint represents a point on the P-256 curve in Jacobian
// projective coordinates (x, y, z), where the affine coordinates are
// (x/z^2, y/z^3). Coordinates are generally carried in Montgomery
// form while a point moves through pointDouble/pointAdd, mirroring
// the reference C's sp_point (which reuses the same wide buffers for
// both representations rather than tagging which domain a value is
// currently in).
type JacobianPoint struct {
	x, y, z  FieldElement
	infinity bool
}

// GroupElementAffine is a point in plain affine (x, y) form, always
// in canonical (non-Montgomery) limb representation. It is the
// representation used when serializing points and handing them to
// callers, as opposed to the Jacobian form used internally by the
// point-arithmetic and scalar-multiplication routines.
type GroupElementAffine struct {
	x, y     FieldElement
	infinity bool
}

// boolMask turns a boolean into an all-ones (-1) or all-zero (0)
// int32, for use with FieldElement.cmov and the cond* helpers.
func boolMask(b bool) int32 {
	if b {
		return -1
	}
	return 0
}

// p256Base is the P-256 generator point, in canonical (non-Montgomery)
// limb form with z = 1, exactly as the reference C's p256_base table.
var p256Base = JacobianPoint{
	x: FieldElement{
		0x098c296, 0x04e5176, 0x33a0f4a, 0x204b7ac, 0x277037d,
		0x0e9103c, 0x3ce6e56, 0x1091fe2, 0x1f2e12c, 0x01ac5f4,
	},
	y: FieldElement{
		0x3bf51f5, 0x1901a0d, 0x1ececbb, 0x15dacc5, 0x22bce33,
		0x303e785, 0x27eb4a7, 0x1fe6e3b, 0x2e2fe1a, 0x013f8d0,
	},
	z:        FieldElement{1},
	infinity: false,
}

// pointFromAffineBytes reads a 64-byte big-endian (X || Y) pair into a
// Jacobian point with z = 1, exactly as the reference C's
// sp_256_point_from_bin2x32. No validity checking is performed here —
// that is the caller's responsibility (see PeerPointLooksValid).
func pointFromAffineBytes(xy *[64]byte) JacobianPoint {
	var p JacobianPoint
	p.x.fromBytes(xy[0:32])
	p.y.fromBytes(xy[32:64])
	p.z = FieldElement{1}
	p.infinity = false
	return p
}

// montgomeryForm converts a point already known to be affine (z == 1,
// canonical form) into its Montgomery-form representation, as used by
// sp_256_ecc_mulmod_10 to prepare the "g" argument (t[1]) before the
// ladder runs. Calls toMontForm on each coordinate in turn, since that
// primitive operates one field element at a time.
func (p *JacobianPoint) montgomeryForm() JacobianPoint {
	var out JacobianPoint
	toMontForm(&out.x, &p.x)
	toMontForm(&out.y, &p.y)
	toMontForm(&out.z, &p.z)
	out.infinity = p.infinity
	return out
}

// cmov conditionally copies a's coordinates into r. The infinity flag
// is handled separately by callers, since it is a plain bool rather
// than limb data.
func (r *JacobianPoint) cmov(a *JacobianPoint, mask int32) {
	r.x.cmov(&a.x, mask)
	r.y.cmov(&a.y, mask)
	r.z.cmov(&a.z, mask)
}

// deMontgomery converts a Montgomery-form field element back to
// canonical form by running it through the reduction primitive once
// more with a zero-extended wide buffer — exactly what the reference
// C's sp_256_map_10 does after its final mont_mul, since a
// Montgomery product of two Montgomery-form operands is itself still
// in Montgomery form and needs one more R^-1 multiplication to land
// in canonical form.
func deMontgomery(a *FieldElement) FieldElement {
	var wide [20]int32
	copy(wide[:10], a[:])
	return reduce(&wide)
}

// pointDouble sets r = p + p. Ported from the reference C's
// sp_256_proj_point_dbl_10: the arithmetic always runs against a
// local working copy of p, and the outcome is folded into r with a
// constant-time select rather than the reference's destination-
// pointer-array trick, so that doubling the point at infinity never
// takes a different code path depending on that flag.
func pointDouble(r, p *JacobianPoint) {
	w := *p
	var t1, t2 FieldElement

	t1 = w.z
	montSqr(&t1, &t1)            // T1 = Z^2
	montMul(&w.z, &w.y, &w.z)    // Z = Y*Z
	montDbl(&w.z, &w.z)          // Z = 2Z
	montSub(&t2, &w.x, &t1)      // T2 = X - T1
	montAdd(&t1, &w.x, &t1)      // T1 = X + T1
	montMul(&t2, &t1, &t2)       // T2 = T1*T2
	montTpl(&t1, &t2)            // T1 = 3*T2
	montDbl(&w.y, &w.y)          // Y = 2Y
	montSqr(&w.y, &w.y)          // Y = Y*Y
	montSqr(&t2, &w.y)           // T2 = Y*Y
	div2(&t2, &t2)               // T2 = T2/2
	montMul(&w.y, &w.y, &w.x)    // Y = Y*X
	montMul(&w.x, &t1, &t1)      // X = T1*T1
	montSub(&w.x, &w.x, &w.y)    // X = X - Y
	montSub(&w.x, &w.x, &w.y)    // X = X - Y
	montSub(&w.y, &w.y, &w.x)    // Y = Y - X
	montMul(&w.y, &w.y, &t1)     // Y = Y*T1
	montSub(&w.y, &w.y, &t2)     // Y = Y - T2

	if r != p {
		*r = *p
	}
	mask := boolMask(!p.infinity)
	r.x.cmov(&w.x, mask)
	r.y.cmov(&w.y, mask)
	r.z.cmov(&w.z, mask)
}

// pointAddGeneral computes the general (non-doubling) Jacobian point
// addition formula r = p + q, assuming p and q are not equal, not
// negatives of each other, and neither is infinity. Ported from the
// else branch of the reference C's sp_256_proj_point_add_10.
func pointAddGeneral(r *JacobianPoint, p, q *JacobianPoint) {
	var z2sq, z1sq, u1, u2, s1, s2, h, bigR, h2, h3, u1h2, dbl FieldElement

	montSqr(&z2sq, &q.z)
	montMul(&s1, &z2sq, &q.z) // S1 = Z2^3 (intermediate)
	montMul(&u1, &z2sq, &p.x) // U1 = X1*Z2^2
	montMul(&s1, &s1, &p.y)   // S1 = Y1*Z2^3

	montSqr(&z1sq, &p.z)
	montMul(&s2, &z1sq, &p.z) // S2 = Z1^3 (intermediate)
	montMul(&u2, &z1sq, &q.x) // U2 = X2*Z1^2
	montMul(&s2, &s2, &q.y)   // S2 = Y2*Z1^3

	montSub(&h, &u2, &u1)    // H = U2 - U1
	montSub(&bigR, &s2, &s1) // R = S2 - S1

	montMul(&r.z, &p.z, &q.z) // Z3 = Z1*Z2
	montMul(&r.z, &r.z, &h)   // Z3 = H*Z1*Z2

	montSqr(&r.x, &bigR)      // X3 = R^2
	montSqr(&h2, &h)          // H2 = H^2
	montMul(&h3, &h2, &h)     // H3 = H^3
	montMul(&u1h2, &u1, &h2)  // U1*H^2
	montSub(&r.x, &r.x, &h3)  // X3 = R^2 - H^3
	montDbl(&dbl, &u1h2)      // 2*U1*H^2
	montSub(&r.x, &r.x, &dbl) // X3 = R^2 - H^3 - 2*U1*H^2

	montSub(&r.y, &u1h2, &r.x) // U1*H^2 - X3
	montMul(&r.y, &r.y, &bigR) // R*(U1*H^2 - X3)
	montMul(&h3, &h3, &s1)     // H^3*S1
	montSub(&r.y, &r.y, &h3)   // Y3 = R*(U1*H^2-X3) - H^3*S1
}

// pointAdd sets r = p + q. Ported from the reference C's
// sp_256_proj_point_add_10, including its shortcut doubling-detection
// predicate (coincident or negated points are both routed to
// pointDouble, a narrow check that gives the right answer only when
// the operands are never exact negatives of each other, as in
// scalarMul's ladder, whose two slots always differ by g). Infinity
// on either side is handled with a constant-time
// select instead of the reference's destination-pointer-array trick.
func pointAdd(r, p, q *JacobianPoint) {
	if q == r {
		p, q = q, p
	}

	var negQY FieldElement
	negQY.sub(&p256Mod, &q.y)
	negQY.normalize()
	isDouble := equal(&p.x, &q.x) && equal(&p.z, &q.z) &&
		(equal(&p.y, &q.y) || equal(&p.y, &negQY))
	if isDouble {
		pointDouble(r, p)
		return
	}

	var w JacobianPoint
	pointAddGeneral(&w, p, q)

	trivial := *q
	trivial.cmov(p, boolMask(!p.infinity))

	result := w
	result.cmov(&trivial, boolMask(p.infinity || q.infinity))
	result.infinity = p.infinity && q.infinity
	*r = result
}

// mapToAffine converts a Montgomery-form Jacobian point to a
// canonical affine point, ported from the reference C's
// sp_256_map_10.
func mapToAffine(p *JacobianPoint) GroupElementAffine {
	var t1, t2 FieldElement
	montInv(&t1, &p.z)  // t1 = Z^-1
	montSqr(&t2, &t1)   // t2 = Z^-2
	montMul(&t1, &t2, &t1) // t1 = Z^-3

	var out GroupElementAffine

	montMul(&out.x, &p.x, &t2)
	out.x = deMontgomery(&out.x)
	mask := boolMask(cmp(&out.x, &p256Mod) >= 0)
	condSub(&out.x, &out.x, &p256Mod, mask)
	out.x.normalize()

	montMul(&out.y, &p.y, &t1)
	out.y = deMontgomery(&out.y)
	mask = boolMask(cmp(&out.y, &p256Mod) >= 0)
	condSub(&out.y, &out.y, &p256Mod, mask)
	out.y.normalize()

	out.infinity = false
	return out
}

// toBytes serializes an affine point as 64 big-endian bytes (X || Y).
func (a *GroupElementAffine) toBytes(out *[64]byte) {
	a.x.toBytes(out[0:32])
	a.y.toBytes(out[32:64])
}
