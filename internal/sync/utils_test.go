package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDivide(t *testing.T) {
	Assert := assert.New(t)

	lst := []int{1, 2, 3, 4, 5, 6, 7}

	parts, err := Divide(lst, 3)
	Assert.NoError(err)
	Assert.Equal([][]int{{1, 2, 3}, {4, 5, 6}, {7}}, parts)

	// конкатенация частей восстанавливает исходный список
	var joined []int
	for _, part := range parts {
		joined = append(joined, part...)
	}
	Assert.Equal(lst, joined)

	// все части кроме последней имеют длину n
	for i, part := range parts {
		if i != len(parts)-1 {
			Assert.Len(part, 3)
		}
	}
}

func TestDivideSizes(t *testing.T) {
	Assert := assert.New(t)

	for _, tc := range []struct {
		length int
		n      int
		count  int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{10, 1, 10},
		{10, 3, 4},
		{10, 10, 1},
		{10, 100, 1},
		{250, 100, 3},
	} {
		lst := make([]string, tc.length)
		parts, err := Divide(lst, tc.n)
		Assert.NoError(err)
		Assert.Len(parts, tc.count, "len=%d n=%d", tc.length, tc.n)

		total := 0
		for _, part := range parts {
			total += len(part)
		}
		Assert.Equal(tc.length, total)
	}
}

func TestDivideBadN(t *testing.T) {
	Assert := assert.New(t)

	_, err := Divide([]int{1, 2, 3}, 0)
	Assert.Error(err)

	_, err = Divide([]int{1, 2, 3}, -5)
	Assert.Error(err)
}

func TestPriceConversion(t *testing.T) {
	Assert := assert.New(t)

	Assert.Equal("5990", PriceConversion("5'990.00 руб."))
	Assert.Equal("100", PriceConversion("100.00"))
	Assert.Equal("0", PriceConversion("0.99")) //усечение, не округление
	Assert.Equal("", PriceConversion("abc.00"))
	Assert.Equal("5990", PriceConversion("5990"))
	Assert.Equal("", PriceConversion(""))
}

func TestStockCount(t *testing.T) {
	Assert := assert.New(t)

	count, err := StockCount(">10")
	Assert.NoError(err)
	Assert.Equal(100, count)

	count, err = StockCount("1")
	Assert.NoError(err)
	Assert.Equal(0, count)

	count, err = StockCount("5")
	Assert.NoError(err)
	Assert.Equal(5, count)

	_, err = StockCount("много")
	Assert.Error(err)
}
