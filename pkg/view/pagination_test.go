package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           string
	}{
		{"first of many", 1, 10, "← [1] 2 3 4 5 ... 10 →"},
		{"second", 2, 10, "← 1 [2] 3 4 5 6 ... 10 →"},
		{"middle", 6, 10, "← 1 ... 4 5 [6] 7 8 ... 10 →"},
		{"third", 3, 10, "← 1 2 [3] 4 5 6 ... 10 →"},
		{"before near end", 8, 10, "← 1 ... 6 7 [8] 9 10 →"},
		{"near end", 9, 10, "← 1 ... 6 7 8 [9] 10 →"},
		{"middle of twenty", 10, 20, "← 1 ... 8 9 [10] 11 12 ... 20 →"},
		{"last", 10, 10, "← 1 ... 6 7 8 9 [10] →"},
		{"fits in range", 2, 3, "← 1 [2] 3 →"},
		{"exactly range", 5, 5, "← 1 2 3 4 [5] →"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPagination(Paginate(tt.current, tt.total)))
		})
	}
}

func TestPaginate_SinglePageHasNoBar(t *testing.T) {
	assert.Nil(t, Paginate(1, 1))
	assert.Nil(t, Paginate(1, 0))
}

func TestPaginate_Arrows(t *testing.T) {
	items := Paginate(1, 3)
	assert.True(t, items[0].Disabled)
	assert.False(t, items[len(items)-1].Disabled)
	assert.Equal(t, 2, items[len(items)-1].Page)

	items = Paginate(3, 3)
	assert.False(t, items[0].Disabled)
	assert.True(t, items[len(items)-1].Disabled)
}
