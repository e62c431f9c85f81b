// Package i18n 提供界面静态文字的中英文对照。
package i18n

import (
	"sort"
	"ta-chat-go/internal/model"
)

type entry struct {
	zh string
	en string
}

var table = map[string]entry{
	"home.title":              {zh: "逢甲大學經濟學課程智能TA", en: "FCU Economics AI TA"},
	"home.welcome":            {zh: "歡迎來到經濟學課程智能TA的專屬頁面！", en: "Welcome to the FCU Economics AI TA's exclusive page!"},
	"nav.docs":                {zh: "文檔", en: "Docs"},
	"nav.chat":                {zh: "問答", en: "Chat"},
	"nav.role.unsigned":       {zh: "未登入", en: "Not signed in"},
	"nav.role.admin":          {zh: "管理員", en: "Admin"},
	"nav.role.student":        {zh: "學生", en: "Student"},
	"chat.mode.THEOREM":       {zh: "大一經濟學原理", en: "Economics Theory"},
	"chat.mode.TESTING":       {zh: "公務員高普考", en: "Economics Exam"},
	"chat.mode.CHATTING":      {zh: "智能助教", en: "AI TA"},
	"chat.chatroom_id":        {zh: "聊天室 ID", en: "Chatroom ID"},
	"chat.role":               {zh: "身份", en: "Role"},
	"chat.tips":               {zh: "機械人可能會出錯。請參考文檔核對重要資訊。", en: "Chatbot responses may be inaccurate. Verify before use."},
	"chat.send":               {zh: "傳送", en: "Send"},
	"chat.input_placeholder":  {zh: "傳送訊息給TA", en: "Send question to TA"},
	"chat.rating.helpful":     {zh: "有幫助", en: "Helpful"},
	"chat.rating.not_helpful": {zh: "沒有幫助", en: "Not helpful"},
	"chat.rating.thanks":      {zh: "感謝你的回饋", en: "Thanks for your feedback"},
	"upload.title":            {zh: "文件上傳", en: "Upload document"},
	"upload.drop_hint":        {zh: "點擊上傳或拖放文件", en: "Click to upload or drop a file"},
	"upload.submit":           {zh: "上傳", en: "Upload"},
	"upload.reset":            {zh: "重設", en: "Reset"},
	"upload.close":            {zh: "關閉", en: "Close"},
	"upload.succeeded":        {zh: "上載成功", en: "Upload succeeded"},
	"upload.failed":           {zh: "上載失敗", en: "Upload failed"},
	"docs.file_name":          {zh: "文件名稱", en: "File name"},
	"docs.last_update":        {zh: "最後更新日期", en: "Last updated"},
	"docs.loading":            {zh: "加載中...", en: "Loading..."},
}

// Label 返回指定语言的文字；未知语言回退为中文，未知键原样返回。
func Label(locale model.Locale, key string) string {
	e, ok := table[key]
	if !ok {
		return key
	}
	if locale == model.LocaleEn && e.en != "" {
		return e.en
	}
	return e.zh
}

// Labels 返回指定语言下的全部文字。
func Labels(locale model.Locale) map[string]string {
	out := make(map[string]string, len(table))
	for key := range table {
		out[key] = Label(locale, key)
	}
	return out
}

// Keys 返回排序后的全部键。
func Keys() []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
