package zhuyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharToZhuyin(t *testing.T) {
	t.Parallel()
	c := New()

	testCases := []struct {
		desc string
		in   string
		want string
	}{
		{desc: "second tone", in: "河", want: "ㄏㄜˊ"},
		{desc: "fourth tone", in: "力", want: "ㄌㄧˋ"},
		{desc: "first tone has no mark", in: "中", want: "ㄓㄨㄥ"},
		{desc: "third tone", in: "水", want: "ㄕㄨㄟˇ"},
		{desc: "non han character", in: "A", want: "A"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got, err := c.CharToZhuyin(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCharToZhuyin_NotSingleChar(t *testing.T) {
	c := New()
	for _, in := range []string{"", "河流", "ab"} {
		_, err := c.CharToZhuyin(in)
		assert.ErrorIs(t, err, ErrNotSingleChar, in)
	}
}

func TestCharToZhuyin_Lookup(t *testing.T) {
	readings := map[string][]string{
		"綠": {"lü4"},
		"的": {"de5"},
		"呢": {"ne"},
		"怪": {"xyz2"},
		"空": {""},
	}
	c := NewWithLookup(func(char string) []string { return readings[char] })

	testCases := []struct {
		in   string
		want string
	}{
		{in: "綠", want: "ㄌㄩˋ"},
		{in: "的", want: "ㄉㄜ˙"},
		{in: "呢", want: "ㄋㄜ"},
		{in: "怪", want: "xyz2"},
		{in: "空", want: "空"},
		{in: "無", want: "無"},
	}
	for _, tc := range testCases {
		got, err := c.CharToZhuyin(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestPinyinToZhuyin(t *testing.T) {
	assert.Equal(t, "ㄐㄩㄝˊ", PinyinToZhuyin("jue2"))
	assert.Equal(t, "ㄋㄩˇ", PinyinToZhuyin("nv3"))
	assert.Equal(t, "ㄦˋ", PinyinToZhuyin("ER4"))
	assert.Equal(t, "ㄩㄢˊ", PinyinToZhuyin("yuan2"))
	assert.Equal(t, "zz9", PinyinToZhuyin("zz9"))
	assert.Equal(t, "4", PinyinToZhuyin("4"))
	assert.Greater(t, Size(), 400)
}
