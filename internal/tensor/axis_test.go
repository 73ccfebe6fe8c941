package tensor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBitAxis(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		axis      Axis
		effective Shape
		resolved  int
	}{
		{"negative axis wraps", Shape{2, 3, 4}, AxisOf(-1), Shape{2, 3, 4}, 2},
		{"positive axis unchanged", Shape{2, 3, 4}, AxisOf(2), Shape{2, 3, 4}, 2},
		{"most negative axis", Shape{2, 3, 4}, AxisOf(-3), Shape{2, 3, 4}, 0},
		{"none flattens rank 2", Shape{2, 3}, NoAxis, Shape{6}, 0},
		{"none keeps rank 1", Shape{5}, NoAxis, Shape{5}, 0},
		{"none on empty", Shape{0, 4}, NoAxis, Shape{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effective, resolved, err := ResolveBitAxis(tt.shape, tt.axis, BigEndian)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.effective, effective); diff != "" {
				t.Errorf("effective shape mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.resolved, resolved)
		})
	}
}

func TestResolveBitAxisMatchesPositive(t *testing.T) {
	shape := Shape{4, 5, 6}
	_, neg, err := ResolveBitAxis(shape, AxisOf(-1), LittleEndian)
	require.NoError(t, err)
	_, pos, err := ResolveBitAxis(shape, AxisOf(2), LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, pos, neg)
}

func TestResolveBitAxisOutOfBounds(t *testing.T) {
	for ndim := 1; ndim <= 5; ndim++ {
		shape := make(Shape, ndim)
		for i := range shape {
			shape[i] = 2
		}
		for _, axis := range []int{ndim, ndim + 3, -ndim - 1, -ndim - 7} {
			t.Run(fmt.Sprintf("ndim=%d axis=%d", ndim, axis), func(t *testing.T) {
				_, _, err := ResolveBitAxis(shape, AxisOf(axis), BigEndian)
				require.ErrorIs(t, err, ErrOutOfBounds)

				var axisErr *AxisError
				require.True(t, errors.As(err, &axisErr))
				assert.Equal(t, fmt.Sprint(axis), axisErr.Axis)
				assert.Equal(t, ndim, axisErr.NDim)
				assert.Equal(t,
					fmt.Sprintf("axis %d is out of bounds for array of dimension %d", axis, ndim),
					err.Error())
			})
		}
		for axis := -ndim; axis < ndim; axis++ {
			_, resolved, err := ResolveBitAxis(shape, AxisOf(axis), BigEndian)
			require.NoError(t, err)
			assert.True(t, resolved >= 0 && resolved < ndim)
		}
	}
}

func TestResolveBitAxisScalar(t *testing.T) {
	tests := []struct {
		axis Axis
		want string
	}{
		{AxisOf(0), "axis 0 is out of bounds for array of dimension 0"},
		{AxisOf(-1), "axis -1 is out of bounds for array of dimension 0"},
		{NoAxis, "axis None is out of bounds for array of dimension 0"},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			_, _, err := ResolveBitAxis(Shape{}, tt.axis, BigEndian)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestResolveBitAxisBitOrder(t *testing.T) {
	for _, order := range []BitOrder{"", "Big", "LITTLE", "middle"} {
		_, _, err := ResolveBitAxis(Shape{8}, NoAxis, order)
		assert.ErrorIs(t, err, ErrInvalidBitOrder, "order %q", order)
	}
	for _, order := range []BitOrder{BigEndian, LittleEndian} {
		_, _, err := ResolveBitAxis(Shape{8}, NoAxis, order)
		assert.NoError(t, err)
	}
}

func TestNormalizeAxes(t *testing.T) {
	perm, err := NormalizeAxes(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, perm)

	perm, err = NormalizeAxes([]int{-1, 0, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, perm)

	_, err = NormalizeAxes([]int{0, 0}, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NormalizeAxes([]int{0}, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NormalizeAxes([]int{0, 2}, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestAxisAndCountStrings(t *testing.T) {
	assert.Equal(t, "None", NoAxis.String())
	assert.Equal(t, "-2", AxisOf(-2).String())
	assert.True(t, NoAxis.IsNone())
	assert.False(t, AxisOf(0).IsNone())
	assert.Equal(t, "None", AllBits.String())
	assert.Equal(t, "7", CountOf(7).String())
}

func TestBitMask(t *testing.T) {
	assert.Equal(t, uint8(0x80), BitMask(0, BigEndian))
	assert.Equal(t, uint8(0x01), BitMask(7, BigEndian))
	assert.Equal(t, uint8(0x01), BitMask(0, LittleEndian))
	assert.Equal(t, uint8(0x80), BitMask(7, LittleEndian))
}

func TestShapeLanes(t *testing.T) {
	outer, inner := Shape{2, 3, 4, 5}.Lanes(1)
	assert.Equal(t, 2, outer)
	assert.Equal(t, 20, inner)

	outer, inner = Shape{7}.Lanes(0)
	assert.Equal(t, 1, outer)
	assert.Equal(t, 1, inner)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(3,)", Shape{3}.String())
	assert.Equal(t, "(2, 0, 4)", Shape{2, 0, 4}.String())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name   string
		shapes []Shape
		want   Shape
		err    bool
	}{
		{"same", []Shape{{3, 5}, {3, 5}}, Shape{3, 5}, false},
		{"stretch column", []Shape{{3, 1}, {3, 5}}, Shape{3, 5}, false},
		{"stretch row", []Shape{{1, 5}, {3, 5}}, Shape{3, 5}, false},
		{"lower rank", []Shape{{20, 21, 22}, {21, 22}}, Shape{20, 21, 22}, false},
		{"mixed ones", []Shape{{1, 21, 1}, {20, 1, 22}}, Shape{20, 21, 22}, false},
		{"three way", []Shape{{4}, {3, 1}, {2, 1, 1}}, Shape{2, 3, 4}, false},
		{"scalar", []Shape{{}, {2, 2}}, Shape{2, 2}, false},
		{"zero extent", []Shape{{0, 1}, {1, 3}}, Shape{0, 3}, false},
		{"incompatible", []Shape{{3, 4}, {3, 5}}, nil, true},
		{"zero against two", []Shape{{0}, {2}}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.shapes...)
			if tt.err {
				assert.ErrorIs(t, err, ErrShapeMismatch)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BroadcastShapes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBroadcastStrides(t *testing.T) {
	got := BroadcastStrides(Shape{3, 1}, Shape{2, 3, 4})
	if diff := cmp.Diff([]int{0, 1, 0}, got); diff != "" {
		t.Errorf("BroadcastStrides mismatch (-want +got):\n%s", diff)
	}
}
