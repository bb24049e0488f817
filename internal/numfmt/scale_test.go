// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/benchexp/numparse"
	"golang.org/x/benchexp/valuegroup"
)

func TestScale(t *testing.T) {
	var cls Class
	test := func(num float64, want, wantPred string) {
		t.Helper()
		assert.Equal(t, want, Scale(numparse.FloatOf(num), cls), "for %v", num)

		// Check the crux between two scale factors.
		pred := math.Nextafter(num, 0)
		assert.Equal(t, wantPred, Scale(numparse.FloatOf(pred), cls), "for %v-ε", num)
	}

	cls = Decimal
	test(0, "0.000", "0.000")
	test(1, "1.000", "1.000")
	test(-1, "-1.000", "-1.000")
	test(99995000000000, "100.0T", "99.99T")
	test(9999500000000, "10.00T", "9.999T")
	test(999950000, "1.000G", "999.9M")
	test(99995, "100.0k", "99.99k")
	test(999.95, "1.000k", "999.9")
	test(.99995, "1.000", "999.9m")
	test(.00000099995, "1.000µ", "999.9n")
	test(.00000000099995, "1.000n", "0.9999n")
	test(-.0000000099995, "-10.00n", "-9.999n")

	cls = Binary
	test(0, "0.000", "0.000")
	test(99.995*(1<<40), "100.0Ti", "99.99Ti")
	test(.99995*(1<<30), "1.000Gi", "1023.9Mi")
	test(9.9995*(1<<10), "10.00Ki", "9.999Ki")
	test(.99995, "1.000", "0.9999")
	test(.00000000005, "0.0000000001", "0.0000000000")
}

func TestAppendExact(t *testing.T) {
	s := CommonScale([]numparse.Number{numparse.IntOf(10)}, Decimal)
	assert.Equal(t, "10", s.Format(numparse.IntOf(10)), "unscaled integers are exact")
	assert.Equal(t, "10.00", s.Format(numparse.FloatOf(10)))

	s = CommonScale([]numparse.Number{numparse.IntOf(2500)}, Decimal)
	assert.Equal(t, "2.500k", s.Format(numparse.IntOf(2500)))

	for _, n := range []numparse.Number{numparse.FloatOf(math.Inf(1)), numparse.FloatOf(math.Inf(-1))} {
		assert.Equal(t, n.String(), s.Format(n))
	}
	assert.Equal(t, "123.456789", NoOpScaler.Format(numparse.FloatOf(123.456789)))
	assert.Equal(t, "-9223372036854775808", NoOpScaler.Format(numparse.IntOf(math.MinInt64)))
}

func TestGroupScale(t *testing.T) {
	var values []valuegroup.Value
	for _, x := range []int64{1500, 3000, 1 << 20, 3 << 20} {
		values = append(values, valuegroup.Value{Value: numparse.IntOf(x), Count: 1})
	}
	gs, err := (&valuegroup.Grouper{}).Group(valuegroup.Distinct, values)
	require.NoError(t, err)
	s := GroupScale(gs)
	assert.Equal(t, Scaler{3, 1000, "k"}, s)
	assert.Equal(t, "[1.500k,1.500k]", s.Range(gs.Groups[0]))

	pow2 := &valuegroup.Groups{
		Mode:  valuegroup.Powers,
		Param: numparse.IntOf(2),
		Groups: []valuegroup.Group{
			{Lower: numparse.IntOf(1 << 10), Upper: numparse.IntOf(1 << 11), UpperExclusive: true, Size: 1, Count: 1},
			{Lower: numparse.IntOf(1 << 20), Upper: numparse.IntOf(1 << 21), UpperExclusive: true, Size: 1, Count: 1},
		},
	}
	assert.Equal(t, Binary, ClassOf(pow2))
	s = GroupScale(pow2)
	assert.Equal(t, "[1.000Ki,2.000Ki)", s.Range(pow2.Groups[0]))
	assert.Equal(t, "[1024.000Ki,2048.000Ki)", s.Range(pow2.Groups[1]))
}
