package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePaginationDefaults(t *testing.T) {
	p := NormalizePagination(0, 0)
	require.Equal(t, int64(1), p.Page)
	require.Equal(t, int64(20), p.PageSize)
	require.Equal(t, int64(0), p.Offset())
}

func TestNormalizePaginationClamps(t *testing.T) {
	cases := []struct {
		name         string
		page, size   int64
		wantPage     int64
		wantPageSize int64
	}{
		{"negative page", -5, 50, 1, 50},
		{"zero size stays default", 3, 0, 3, 20},
		{"negative size", 2, -1, 2, 1},
		{"size above cap", 1, 1000, 1, 200},
		{"size at cap", 1, 200, 1, 200},
		{"size at floor", 1, 1, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NormalizePagination(tc.page, tc.size)
			require.Equal(t, tc.wantPage, p.Page)
			require.Equal(t, tc.wantPageSize, p.PageSize)
		})
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	// offset must always be derivable from the returned page and size alone
	for page := int64(1); page <= 5; page++ {
		for _, size := range []int64{1, 20, 200} {
			p := NormalizePagination(page, size)
			require.Equal(t, (p.Page-1)*p.PageSize, p.Offset())
		}
	}
}

func TestNewPageNeverNullData(t *testing.T) {
	p := NormalizePagination(1, 10)
	page := NewPage[int](nil, 0, p)
	require.NotNil(t, page.Data)
	require.Empty(t, page.Data)
	require.Equal(t, int64(0), page.Total)
}
