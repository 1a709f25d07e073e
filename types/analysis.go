package types

// ComplexityIndicators summarizes how dense or technical a text is.
type ComplexityIndicators struct {
	TechnicalTerms      int     `json:"technicalTerms"`
	ComplexWords        int     `json:"complexWords"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
	NestedStructures    int     `json:"nestedStructures"`
	ComplexityScore     int     `json:"complexityScore"`
}

// AnalysisResult holds the features extracted from a prompt. It is a pure
// function of the text and is recomputed on every call.
type AnalysisResult struct {
	Length                  int                  `json:"length"`
	WordCount               int                  `json:"wordCount"`
	SentenceCount           int                  `json:"sentenceCount"`
	ParagraphCount          int                  `json:"paragraphCount"`
	AverageWordsPerSentence float64              `json:"averageWordsPerSentence"`
	EstimatedTokens         int                  `json:"estimatedTokens"`
	HasQuestions            bool                 `json:"hasQuestions"`
	HasExamples             bool                 `json:"hasExamples"`
	HasConstraints          bool                 `json:"hasConstraints"`
	HasContext              bool                 `json:"hasContext"`
	HasFormatting           bool                 `json:"hasFormatting"`
	HasStructure            bool                 `json:"hasStructure"`
	ComplexityIndicators    ComplexityIndicators `json:"complexityIndicators"`
}
