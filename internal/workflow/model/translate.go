package model

type TranslateInput struct {
	Text           string
	TargetLanguage string

	Provider string
	Model    string
}

type TranslateOutput struct {
	Text string
	Meta LLMUsageMeta
}
