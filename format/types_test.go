package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregationMethod_String(t *testing.T) {
	tests := []struct {
		method AggregationMethod
		want   string
	}{
		{AggregationAverage, "average"},
		{AggregationSum, "sum"},
		{AggregationLast, "last"},
		{AggregationMax, "max"},
		{AggregationMin, "min"},
		{AggregationFirst, "first"},
		{AggregationVariance, "variance"},
		{AggregationStdDev, "stddev"},
		{AggregationAbsolute, "absolute"},
		{AggregationMethod(0), "unrecognized(0)"},
		{AggregationMethod(42), "unrecognized(42)"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.method.String())
	}
}

func TestAggregationMethod_Known(t *testing.T) {
	for m := AggregationAverage; m <= AggregationAbsolute; m++ {
		require.True(t, m.Known(), "code %d should be known", m)
	}

	require.False(t, AggregationMethod(0).Known())
	require.False(t, AggregationMethod(10).Known())
	require.False(t, AggregationMethod(0xFFFFFFFF).Known())
}
