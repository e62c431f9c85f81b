// Package model 定义了会话、问答轮次、上传任务等核心数据结构。
package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale 是界面显示语言，只允许 zh 与 en 两个取值。
type Locale string

const (
	LocaleZh Locale = "zh"
	LocaleEn Locale = "en"

	DefaultLocale = LocaleZh
)

// Language 是后端问答接口使用的语言名称。
type Language string

const (
	LanguageChinese Language = "CHINESE"
	LanguageEnglish Language = "ENGLISH"
)

// Language 将界面语言规范化为后端语言名称，无法识别的值一律回退为 CHINESE。
func (l Locale) Language() Language {
	switch l {
	case LocaleZh:
		return LanguageChinese
	case LocaleEn:
		return LanguageEnglish
	default:
		return LanguageChinese
	}
}

// Valid 判断是否为已知的界面语言。
func (l Locale) Valid() bool {
	return l == LocaleZh || l == LocaleEn
}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.Chinese,
	language.English,
})

// ParseLocale 解析浏览器或用户传入的语言标签（如 en-US、zh-TW、zh-Hant）。
// ok 为 false 时返回原始值，交由 Language() 在派发时回退。
func ParseLocale(raw string) (Locale, bool) {
	s := strings.TrimSpace(raw)
	switch Locale(strings.ToLower(s)) {
	case LocaleZh:
		return LocaleZh, true
	case LocaleEn:
		return LocaleEn, true
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Locale(s), false
	}
	switch base, _ := tag.Base(); base.String() {
	case "zh":
		return LocaleZh, true
	case "en":
		return LocaleEn, true
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf < language.High {
		return Locale(s), false
	}
	if idx == 1 {
		return LocaleEn, true
	}
	return LocaleZh, true
}

// QuestionMode 是提问意图，决定后端的回答方式。
type QuestionMode string

const (
	ModeChatting QuestionMode = "CHATTING"
	ModeTesting  QuestionMode = "TESTING"
	ModeTheorem  QuestionMode = "THEOREM"

	DefaultMode = ModeChatting
)

// ParseQuestionMode 不区分大小写地解析提问模式，未知取值返回错误。
func ParseQuestionMode(raw string) (QuestionMode, error) {
	switch QuestionMode(strings.ToUpper(strings.TrimSpace(raw))) {
	case ModeChatting:
		return ModeChatting, nil
	case ModeTesting:
		return ModeTesting, nil
	case ModeTheorem:
		return ModeTheorem, nil
	default:
		return "", fmt.Errorf("unknown question mode %q", raw)
	}
}
