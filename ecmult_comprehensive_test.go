package p256ecdh

import "testing"

// scalarFromUint64 builds a Scalar holding a small non-negative integer,
// for exercising scalarMul's group-law properties against easy-to-reason
// inputs.
func scalarFromUint64(v uint64) Scalar {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[31-i] = byte(v >> (8 * i))
	}
	var s Scalar
	s.fromBytes(buf[:])
	return s
}

func affineEqual(a, b *GroupElementAffine) bool {
	return a.infinity == b.infinity && equal(&a.x, &b.x) && equal(&a.y, &b.y)
}

func TestScalarMulByOneIsIdentityOnGenerator(t *testing.T) {
	one := scalarFromUint64(1)
	got := baseScalarMul(&one)

	gAff := GroupElementAffine{x: p256Base.x, y: p256Base.y}
	if !affineEqual(&got, &gAff) {
		t.Errorf("scalarMul(G,1) should equal G, got x=%v y=%v", got.x, got.y)
	}
}

func TestScalarMulHomomorphism(t *testing.T) {
	cases := []struct{ a, b uint64 }{
		{3, 5}, {1, 1}, {7, 11}, {100, 250}, {2, 2},
	}
	for _, c := range cases {
		sa := scalarFromUint64(c.a)
		sb := scalarFromUint64(c.b)
		sSum := scalarFromUint64(c.a + c.b)

		pa := baseScalarMul(&sa)
		pb := baseScalarMul(&sb)
		pSum := baseScalarMul(&sSum)

		jp := JacobianPoint{x: pa.x, y: pa.y, z: fieldOne}
		jq := JacobianPoint{x: pb.x, y: pb.y, z: fieldOne}
		paMont := jp.montgomeryForm()
		pbMont := jq.montgomeryForm()

		var added JacobianPoint
		pointAdd(&added, &paMont, &pbMont)
		addedAffine := mapToAffine(&added)

		if !affineEqual(&addedAffine, &pSum) {
			t.Errorf("a=%d b=%d: scalarMul(G,a)+scalarMul(G,b) should equal scalarMul(G,a+b)", c.a, c.b)
		}
	}
}

func TestScalarMulWithHighZeroPrefixMatchesShortScalar(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 42
	var padded Scalar
	padded.fromBytes(raw)

	short := scalarFromUint64(42)

	got := baseScalarMul(&padded)
	want := baseScalarMul(&short)

	if !affineEqual(&got, &want) {
		t.Error("leading zero bytes in the scalar must not change the result")
	}
}

func TestScalarMulBottomBitOnlyStaysAtInfinityThroughEarlyIterations(t *testing.T) {
	// A scalar whose only set bit is the very bottom bit forces the
	// ladder's t[0] slot to sit at infinity through every iteration
	// except the very last, exercising the infinity-handling cmov path
	// across the full 256-bit walk.
	one := scalarFromUint64(1)
	got := baseScalarMul(&one)

	gAff := GroupElementAffine{x: p256Base.x, y: p256Base.y}
	if !affineEqual(&got, &gAff) {
		t.Error("scalar with only the bottom bit set should still yield G")
	}
}

func TestScalarMulAgainstArbitraryPoint(t *testing.T) {
	three := scalarFromUint64(3)
	p3 := baseScalarMul(&three)

	var xy [64]byte
	p3.toBytes(&xy)
	p := pointFromAffineBytes(&xy)

	five := scalarFromUint64(5)
	got := scalarMul(&five, &p)

	fifteen := scalarFromUint64(15)
	want := baseScalarMul(&fifteen)

	if !affineEqual(&got, &want) {
		t.Error("scalarMul(3G, 5) should equal scalarMul(G, 15)")
	}
}
