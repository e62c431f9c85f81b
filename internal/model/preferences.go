package model

import "sync"

// PreferenceSnapshot 是某一时刻的界面语言与提问模式。
type PreferenceSnapshot struct {
	Locale   Locale       `json:"locale"`
	Mode     QuestionMode `json:"mode"`
	Language Language     `json:"language"`
}

// Preferences 保存界面语言与提问模式，显式传给需要它的组件。
// 写入是同步的、后写覆盖先写，写入后的读取立即看到新值。
type Preferences struct {
	mu     sync.RWMutex
	locale Locale
	mode   QuestionMode
}

// NewPreferences 以默认值 zh / CHATTING 创建。
func NewPreferences() *Preferences {
	return &Preferences{locale: DefaultLocale, mode: DefaultMode}
}

// SetLocale 设置界面语言。未知取值照常保存，派发时规范化为 CHINESE。
func (p *Preferences) SetLocale(l Locale) {
	p.mu.Lock()
	p.locale = l
	p.mu.Unlock()
}

// SetMode 设置提问模式。
func (p *Preferences) SetMode(m QuestionMode) {
	p.mu.Lock()
	p.mode = m
	p.mu.Unlock()
}

// Current 返回当前取值。
func (p *Preferences) Current() PreferenceSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PreferenceSnapshot{
		Locale:   p.locale,
		Mode:     p.mode,
		Language: p.locale.Language(),
	}
}
