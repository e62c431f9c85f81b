package i18n

import (
	"sort"
	"ta-chat-go/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name   string
		locale model.Locale
		key    string
		want   string
	}{
		{name: "zh", locale: model.LocaleZh, key: "chat.send", want: "傳送"},
		{name: "en", locale: model.LocaleEn, key: "chat.send", want: "Send"},
		{name: "unknown locale falls back to zh", locale: model.Locale("fr"), key: "chat.send", want: "傳送"},
		{name: "unknown key", locale: model.LocaleEn, key: "no.such.key", want: "no.such.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.locale, tt.key))
		})
	}
}

func TestEveryKeyTranslated(t *testing.T) {
	for _, key := range Keys() {
		assert.NotEmpty(t, table[key].zh, key)
		assert.NotEmpty(t, table[key].en, key)
	}
}

func TestModesHaveLabels(t *testing.T) {
	for _, mode := range []model.QuestionMode{model.ModeChatting, model.ModeTesting, model.ModeTheorem} {
		key := "chat.mode." + string(mode)
		assert.NotEqual(t, key, Label(model.LocaleEn, key))
	}
}

func TestLabelsAndKeys(t *testing.T) {
	keys := Keys()
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Len(t, Labels(model.LocaleEn), len(keys))
	assert.Equal(t, "Docs", Labels(model.LocaleEn)["nav.docs"])
}
