// Package anchor establishes the world-space frame the board is placed in:
// hit-test driven reticle placement, trigger confirmation and persistence of
// the confirmed transform.
package anchor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/xr-pong/internal/core"
)

// Transform is a rigid world transform: a position and a unit orientation.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Identity returns the transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Orientation: mgl64.QuatIdent()}
}

// At returns a transform at position p with no rotation.
func At(p mgl64.Vec3) Transform {
	return Transform{Position: p, Orientation: mgl64.QuatIdent()}
}

// FromMatrix decomposes a rigid pose matrix into position and orientation.
func FromMatrix(m mgl64.Mat4) Transform {
	return Transform{
		Position:    m.Col(3).Vec3(),
		Orientation: mgl64.Mat4ToQuat(m).Normalize(),
	}
}

// Matrix returns the 4x4 model matrix of the transform.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Orientation.Mat4())
}

// Apply maps a point from the transform's local frame to world space.
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	return t.Orientation.Rotate(local).Add(t.Position)
}

// ApproxEqual reports whether two transforms match within the mgl64 epsilon.
// q and -q describe the same rotation.
func (t Transform) ApproxEqual(o Transform) bool {
	if !t.Position.ApproxEqual(o.Position) {
		return false
	}
	return t.Orientation.ApproxEqual(o.Orientation) ||
		t.Orientation.ApproxEqual(o.Orientation.Scale(-1))
}

// Errors returned when decoding a persisted transform.
var (
	ErrMalformed      = errors.New("anchor: malformed transform record")
	ErrZeroQuaternion = errors.New("anchor: zero-length quaternion")
)

// record is the persisted form: { "position": [x,y,z], "quaternion": [x,y,z,w] }.
type record struct {
	Position   []float64 `json:"position"`
	Quaternion []float64 `json:"quaternion"`
}

// Encode serializes the transform to its persisted JSON form.
func (t Transform) Encode() (string, error) {
	q := t.Orientation
	rec := record{
		Position:   []float64{t.Position.X(), t.Position.Y(), t.Position.Z()},
		Quaternion: []float64{q.X(), q.Y(), q.Z(), q.W},
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("anchor: encode transform: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted transform. The orientation is normalized.
func Decode(data string) (Transform, error) {
	var rec record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return Transform{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(rec.Position) != 3 || len(rec.Quaternion) != 4 {
		return Transform{}, fmt.Errorf("%w: want 3 position and 4 quaternion components, got %d and %d",
			ErrMalformed, len(rec.Position), len(rec.Quaternion))
	}
	if !core.Finite(rec.Position...) || !core.Finite(rec.Quaternion...) {
		return Transform{}, fmt.Errorf("%w: non-finite component", ErrMalformed)
	}

	q := mgl64.Quat{
		W: rec.Quaternion[3],
		V: mgl64.Vec3{rec.Quaternion[0], rec.Quaternion[1], rec.Quaternion[2]},
	}
	if q.Len() < 1e-9 {
		return Transform{}, ErrZeroQuaternion
	}

	return Transform{
		Position:    mgl64.Vec3{rec.Position[0], rec.Position[1], rec.Position[2]},
		Orientation: q.Normalize(),
	}, nil
}
