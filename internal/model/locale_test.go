package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleLanguage(t *testing.T) {
	tests := []struct {
		locale Locale
		want   Language
	}{
		{locale: LocaleZh, want: LanguageChinese},
		{locale: LocaleEn, want: LanguageEnglish},
		{locale: Locale("zz"), want: LanguageChinese},
		{locale: Locale(""), want: LanguageChinese},
	}

	for _, tt := range tests {
		t.Run(string(tt.locale), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.locale.Language())
		})
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		raw    string
		want   Locale
		wantOK bool
	}{
		{raw: "zh", want: LocaleZh, wantOK: true},
		{raw: "EN", want: LocaleEn, wantOK: true},
		{raw: "en-US", want: LocaleEn, wantOK: true},
		{raw: "en-GB", want: LocaleEn, wantOK: true},
		{raw: "zh-TW", want: LocaleZh, wantOK: true},
		{raw: "zh-Hant", want: LocaleZh, wantOK: true},
		{raw: "not a tag", want: Locale("not a tag"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLocale(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocaleUnknownFallsBackToChinese(t *testing.T) {
	got, ok := ParseLocale("fr")
	assert.False(t, ok)
	assert.Equal(t, LanguageChinese, got.Language())
}

func TestParseQuestionMode(t *testing.T) {
	for raw, want := range map[string]QuestionMode{
		"CHATTING":  ModeChatting,
		"testing":   ModeTesting,
		" Theorem ": ModeTheorem,
	} {
		got, err := ParseQuestionMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseQuestionMode("QUIZ")
	assert.Error(t, err)
}

func TestPreferences(t *testing.T) {
	p := NewPreferences()
	assert.Equal(t, PreferenceSnapshot{Locale: LocaleZh, Mode: ModeChatting, Language: LanguageChinese}, p.Current())

	p.SetLocale(LocaleEn)
	p.SetMode(ModeTheorem)
	assert.Equal(t, PreferenceSnapshot{Locale: LocaleEn, Mode: ModeTheorem, Language: LanguageEnglish}, p.Current())

	p.SetLocale(Locale("zz"))
	assert.Equal(t, LanguageChinese, p.Current().Language)
}
