package entity

// Voice 朗读声音
type Voice string

const (
	VoiceLisa    Voice = "Lisa (Female)"
	VoiceMichael Voice = "Michael (Male)"
	VoiceAllison Voice = "Allison (Female)"
)

// DefaultVoice 未知声音标签时使用的声音
const DefaultVoice = VoiceLisa

// VoiceProfile 声音在各合成后端上的标识
type VoiceProfile struct {
	Voice  Voice  `json:"voice"`
	Gender string `json:"gender"`
	Watson string `json:"-"`
	OpenAI string `json:"-"`
	Google string `json:"-"`
}

var voiceCatalog = []VoiceProfile{
	{Voice: VoiceLisa, Gender: "female", Watson: "en-US_LisaV3Voice", OpenAI: "nova", Google: "en-US-Standard-C"},
	{Voice: VoiceMichael, Gender: "male", Watson: "en-US_MichaelV3Voice", OpenAI: "onyx", Google: "en-US-Standard-D"},
	{Voice: VoiceAllison, Gender: "female", Watson: "en-US_AllisonV3Voice", OpenAI: "shimmer", Google: "en-US-Standard-E"},
}

// Voices 返回声音目录
func Voices() []VoiceProfile {
	out := make([]VoiceProfile, len(voiceCatalog))
	copy(out, voiceCatalog)
	return out
}

// LookupVoice 查找声音，第二个返回值表示是否命中
func LookupVoice(label string) (VoiceProfile, bool) {
	for _, p := range voiceCatalog {
		if string(p.Voice) == label {
			return p, true
		}
	}
	return VoiceProfile{}, false
}

// ResolveVoice 查找声音，未知标签回退为 fallback，再回退为 DefaultVoice
func ResolveVoice(label string, fallback Voice) VoiceProfile {
	if p, ok := LookupVoice(label); ok {
		return p
	}
	if p, ok := LookupVoice(string(fallback)); ok {
		return p
	}
	p, _ := LookupVoice(string(DefaultVoice))
	return p
}
