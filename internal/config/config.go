// Package config 提供配置加载和管理功能
package config

import (
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Storage       StorageConfig       `yaml:"storage" mapstructure:"storage"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm"`
	Rewrite       RewriteConfig       `yaml:"rewrite" mapstructure:"rewrite"`
	Translation   TranslationConfig   `yaml:"translation" mapstructure:"translation"`
	TTS           TTSConfig           `yaml:"tts" mapstructure:"tts"`
	STT           STTConfig           `yaml:"stt" mapstructure:"stt"`
	Upload        UploadConfig        `yaml:"upload" mapstructure:"upload"`
	Audiobook     AudiobookConfig     `yaml:"audiobook" mapstructure:"audiobook"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// StorageConfig 音频存储配置
type StorageConfig struct {
	// Driver 存储驱动：local 或 s3
	Driver string      `yaml:"driver" mapstructure:"driver"`
	Local  LocalConfig `yaml:"local" mapstructure:"local"`
	S3     S3Config    `yaml:"s3" mapstructure:"s3"`
}

// LocalConfig 本地磁盘存储配置
type LocalConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// S3Config S3 兼容对象存储配置（AWS S3 / Cloudflare R2 / MinIO）
type S3Config struct {
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint"`
	Region          string `yaml:"region" mapstructure:"region"`
	Bucket          string `yaml:"bucket" mapstructure:"bucket"`
	AccessKeyID     string `yaml:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" mapstructure:"secret_access_key"`
	ForcePathStyle  bool   `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// LLMConfig LLM 配置
type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider" mapstructure:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
}

// ProviderConfig LLM 提供商配置（OpenAI 兼容接口）
type ProviderConfig struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	TopP        float64       `yaml:"top_p" mapstructure:"top_p"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// FrequencyPenalty 对应本地推理中的 repetition_penalty
	FrequencyPenalty float64 `yaml:"frequency_penalty" mapstructure:"frequency_penalty"`
}

// RewriteConfig 语气改写配置
type RewriteConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	// ExpansionPercent 输出相对输入的最大百分比（120 即 1.2 倍）
	ExpansionPercent int `yaml:"expansion_percent" mapstructure:"expansion_percent"`
	// SlackTokens 在比例之外额外允许的 token 数
	SlackTokens int     `yaml:"slack_tokens" mapstructure:"slack_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	TopP        float64 `yaml:"top_p" mapstructure:"top_p"`
	// Encoding 用于统计 prompt token 数的 BPE 编码
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	MaxChars int    `yaml:"max_chars" mapstructure:"max_chars"`
}

// TranslationConfig 转写文本翻译配置
type TranslationConfig struct {
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	Provider       string `yaml:"provider" mapstructure:"provider"`
	TargetLanguage string `yaml:"target_language" mapstructure:"target_language"`
}

// TTSConfig 语音合成配置
type TTSConfig struct {
	// Provider 合成后端：openai / watson / google
	Provider     string          `yaml:"provider" mapstructure:"provider"`
	DefaultVoice string          `yaml:"default_voice" mapstructure:"default_voice"`
	Timeout      time.Duration   `yaml:"timeout" mapstructure:"timeout"`
	MaxChars     int             `yaml:"max_chars" mapstructure:"max_chars"`
	CacheTTL     time.Duration   `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	OpenAI       OpenAITTSConfig `yaml:"openai" mapstructure:"openai"`
	Watson       WatsonTTSConfig `yaml:"watson" mapstructure:"watson"`
	Google       GoogleTTSConfig `yaml:"google" mapstructure:"google"`
}

// OpenAITTSConfig OpenAI 兼容 /audio/speech 接口配置
type OpenAITTSConfig struct {
	APIKey  string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string  `yaml:"base_url" mapstructure:"base_url"`
	Model   string  `yaml:"model" mapstructure:"model"`
	Speed   float64 `yaml:"speed" mapstructure:"speed"`
}

// WatsonTTSConfig IBM Watson Text to Speech 配置
type WatsonTTSConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	URL    string `yaml:"url" mapstructure:"url"`
}

// GoogleTTSConfig Google Cloud Text-to-Speech 配置
type GoogleTTSConfig struct {
	CredentialsFile string  `yaml:"credentials_file" mapstructure:"credentials_file"`
	LanguageCode    string  `yaml:"language_code" mapstructure:"language_code"`
	SpeakingRate    float64 `yaml:"speaking_rate" mapstructure:"speaking_rate"`
}

// STTConfig 语音转写配置
type STTConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Token   string        `yaml:"token" mapstructure:"token"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxDocumentBytes int64 `yaml:"max_document_bytes" mapstructure:"max_document_bytes"`
	MaxAudioBytes    int64 `yaml:"max_audio_bytes" mapstructure:"max_audio_bytes"`
}

// AudiobookConfig 有声书结果配置
type AudiobookConfig struct {
	// RecordTTL 结果记录在缓存中的保留时间
	RecordTTL     time.Duration `yaml:"record_ttl" mapstructure:"record_ttl"`
	KeyPrefix     string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	PublicBaseURL string        `yaml:"public_base_url" mapstructure:"public_base_url"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}
