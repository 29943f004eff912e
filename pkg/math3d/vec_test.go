package math3d

import (
	"errors"
	"math"
	"testing"
)

func TestVec3Unit(t *testing.T) {
	tests := []struct {
		name    string
		in      Vec3
		want    Vec3
		wantErr bool
	}{
		{"axis", V3(0, 0, 4), V3(0, 0, 1), false},
		{"diagonal", V3(3, 4, 0), V3(0.6, 0.8, 0), false},
		{"zero", V3(0, 0, 0), Vec3{}, true},
		{"tiny", V3(1e-12, 0, 0), Vec3{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Unit()
			if tc.wantErr {
				if !errors.Is(err, ErrDegenerateVector) {
					t.Errorf("err = %v, want ErrDegenerateVector", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.ApproxEqual(tc.want, 1e-12) {
				t.Errorf("Unit(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	x, y, z := V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)
	if x.Cross(y) != z || y.Cross(z) != x || z.Cross(x) != y {
		t.Error("cross product is not right-handed")
	}
	a := V3(1, 2, 3)
	if c := a.Cross(a); c.Len() != 0 {
		t.Errorf("a × a = %v, want zero", c)
	}
}

func TestHomogeneousPromotion(t *testing.T) {
	v := V3(1, 2, 3)
	if v.Point() != V4(1, 2, 3, 1) {
		t.Errorf("Point() = %v", v.Point())
	}
	if v.Dir() != V4(1, 2, 3, 0) {
		t.Errorf("Dir() = %v", v.Dir())
	}
	if v.Point().Vec3() != v {
		t.Errorf("Vec3() round trip = %v", v.Point().Vec3())
	}
}

func TestVec4Lerp(t *testing.T) {
	a := V4(0, 0, 0, 1)
	b := V4(2, 4, -6, 1)
	got := a.Lerp(b, 0.5)
	if !got.ApproxEqual(V4(1, 2, -3, 1), 1e-12) {
		t.Errorf("Lerp = %v", got)
	}
	if _, err := V4(0, 0, 0, 0).Unit(); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("zero Vec4 Unit err = %v", err)
	}
}

func TestNormalizeZero(t *testing.T) {
	if n := Zero3().Normalize(); n != Zero3() {
		t.Errorf("Normalize(0) = %v", n)
	}
	if l := V3(2, 2, 1).Normalize().Len(); math.Abs(l-1) > 1e-12 {
		t.Errorf("|Normalize| = %v", l)
	}
}
