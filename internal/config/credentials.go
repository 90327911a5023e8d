package config

import "strings"

// Feature 需要外部凭据的功能
type Feature string

const (
	FeatureRewrite       Feature = "rewrite"
	FeatureSynthesis     Feature = "synthesis"
	FeatureTranscription Feature = "transcription"
)

// RewriteProvider 返回改写使用的 LLM 提供商名称
func (c *Config) RewriteProvider() string {
	if p := strings.TrimSpace(c.Rewrite.Provider); p != "" {
		return p
	}
	return strings.TrimSpace(c.LLM.DefaultProvider)
}

// TranslationProvider 返回翻译使用的 LLM 提供商名称
func (c *Config) TranslationProvider() string {
	if p := strings.TrimSpace(c.Translation.Provider); p != "" {
		return p
	}
	return strings.TrimSpace(c.LLM.DefaultProvider)
}

// MissingCredentials 返回某功能缺失的凭据配置项，空切片表示可用
func (c *Config) MissingCredentials(f Feature) []string {
	var missing []string
	switch f {
	case FeatureRewrite:
		missing = c.missingLLM(c.RewriteProvider())
	case FeatureSynthesis:
		missing = c.missingLLM(c.RewriteProvider())
		missing = append(missing, c.missingTTS()...)
	case FeatureTranscription:
		if strings.TrimSpace(c.STT.Token) == "" {
			missing = append(missing, "stt.token")
		}
		if c.Translation.Enabled {
			missing = append(missing, c.missingLLM(c.TranslationProvider())...)
		}
	}
	return missing
}

func (c *Config) missingLLM(provider string) []string {
	if provider == "" {
		return []string{"llm.default_provider"}
	}
	p, ok := c.LLM.Providers[provider]
	if !ok {
		return []string{"llm.providers." + provider}
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return []string{"llm.providers." + provider + ".api_key"}
	}
	return nil
}

func (c *Config) missingTTS() []string {
	switch strings.ToLower(strings.TrimSpace(c.TTS.Provider)) {
	case "watson":
		var missing []string
		if strings.TrimSpace(c.TTS.Watson.APIKey) == "" {
			missing = append(missing, "tts.watson.api_key")
		}
		if strings.TrimSpace(c.TTS.Watson.URL) == "" {
			missing = append(missing, "tts.watson.url")
		}
		return missing
	case "google":
		// 未配置凭据文件时走 Application Default Credentials
		return nil
	default:
		// 自建的 OpenAI 兼容服务（如 Kokoro）通常不需要密钥
		if strings.Contains(c.TTS.OpenAI.BaseURL, "api.openai.com") && strings.TrimSpace(c.TTS.OpenAI.APIKey) == "" {
			return []string{"tts.openai.api_key"}
		}
		return nil
	}
}
