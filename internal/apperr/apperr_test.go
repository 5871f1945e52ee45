package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	custom := Newf(RoomNotFound, "no room %q", "ABCD")
	wrapped := fmt.Errorf("join: %w", custom)

	assert.ErrorIs(t, wrapped, ErrRoomNotFound)
	assert.NotErrorIs(t, wrapped, ErrRoomFull)
	assert.Equal(t, RoomNotFound, CodeOf(wrapped))
	assert.Equal(t, Internal, CodeOf(errors.New("boom")))
}

func TestLocalize(t *testing.T) {
	testCases := []struct {
		desc   string
		locale string
		err    error
		code   Code
		msg    string
	}{
		{desc: "english default message", locale: "en", err: ErrRoomFull, code: RoomFull, msg: "room is full"},
		{desc: "traditional chinese", locale: "zh-TW", err: ErrRoomFull, code: RoomFull, msg: "房間已滿"},
		{desc: "unknown locale", locale: "fr", err: ErrWrongPassword, code: WrongPassword, msg: "wrong password"},
		{desc: "foreign error", locale: "en", err: errors.New("x"), code: Internal, msg: "internal error"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			code, msg := Localize(tc.locale, tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "你已經提交過提示了", Message("zh-TW", DuplicateHint, "dup"))
	assert.Equal(t, "「流」和「河」無法組成有效的兩字詞", Message("zh-TW", NoSuchWord, "「流」和「河」無法組成有效的兩字詞"))
	assert.Equal(t, "「流」和「河」無法組成有效的兩字詞", Message("en", NoSuchWord, "「流」和「河」無法組成有效的兩字詞"))
	assert.True(t, HasLocale("en"))
	assert.False(t, HasLocale("de"))
}
