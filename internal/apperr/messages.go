package apperr

import "errors"

// Catalog maps codes to display text for one locale.
type Catalog map[Code]string

var catalogs = map[string]Catalog{
	"en": {
		NotHinter:     "only hinters can submit hints",
		DuplicateHint: "you already submitted a hint",
		NotSingleChar: "a hint must be a single character",
		HintIsSecret:  "you cannot hint the secret itself",
		HintPhaseOver: "the hint phase is over",
		NoGuessesLeft: "no guesses left this round",
		RoundSolved:   "this round is already solved",
	},
	"zh-TW": {
		RoomNotFound:        "找不到房間",
		GameInProgress:      "遊戲已開始",
		RoomFull:            "房間已滿",
		WrongPassword:       "密碼錯誤",
		NotHost:             "只有房主可以執行此操作",
		NotInRoom:           "你不在房間中",
		AlreadyInRoom:       "你已經在房間中",
		InsufficientPlayers: "至少需要 3 名玩家",
		NotReady:            "還有玩家未準備",
		InvalidRole:         "你的角色無法執行此操作",
		InvalidWord:         "主字必須是單一個字",
		InvalidGuess:        "猜測必須是單一個字",
		GameNotFound:        "遊戲不存在",
		WrongPhase:          "目前階段無法執行此操作",
		InvalidName:         "名稱長度需為 1 到 20 個字",
		InvalidSettings:     "房間設定無效",
		InvalidToken:        "重新連線憑證無效",
		BadRequest:          "請求格式錯誤",
		RateLimited:         "操作太頻繁，請稍後再試",
		Internal:            "伺服器錯誤",
		NotHinter:           "只有提示者可以提交提示",
		DuplicateHint:       "你已經提交過提示了",
		NotSingleChar:       "提示必須是單一個字",
		HintIsSecret:        "不能直接提示主字",
		HintPhaseOver:       "提示階段已結束",
		NoGuessesLeft:       "本回合已無猜測機會",
		RoundSolved:         "本回合已猜中",
	},
}

// Message returns the text for code in locale, or fallback when the
// catalog has no entry.
func Message(locale string, code Code, fallback string) string {
	if msg, ok := catalogs[locale][code]; ok {
		return msg
	}
	return fallback
}

// Localize renders err for display. Foreign errors become Internal.
func Localize(locale string, err error) (Code, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, Message(locale, e.Code, e.Message)
	}
	return Internal, Message(locale, Internal, "internal error")
}

// HasLocale reports whether a catalog exists for locale.
func HasLocale(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}
