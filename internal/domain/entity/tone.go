// Package entity 定义领域实体
package entity

// Tone 改写语气
type Tone string

const (
	ToneNeutral     Tone = "Neutral"
	ToneSuspenseful Tone = "Suspenseful"
	ToneInspiring   Tone = "Inspiring"
)

// Tones 返回全部支持的语气，顺序与界面展示一致
func Tones() []Tone {
	return []Tone{ToneNeutral, ToneSuspenseful, ToneInspiring}
}

// ParseTone 按大小写敏感匹配语气标签，未知标签回退为 Neutral
func ParseTone(label string) Tone {
	switch Tone(label) {
	case ToneSuspenseful:
		return ToneSuspenseful
	case ToneInspiring:
		return ToneInspiring
	default:
		return ToneNeutral
	}
}

// IsKnownTone 判断标签是否为受支持的语气
func IsKnownTone(label string) bool {
	switch Tone(label) {
	case ToneNeutral, ToneSuspenseful, ToneInspiring:
		return true
	}
	return false
}

// String 实现 fmt.Stringer
func (t Tone) String() string {
	return string(t)
}
