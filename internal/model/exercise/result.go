package exercise

// Result is the tagged completion payload, one variant per exercise kind.
// Dispatch happens on the concrete type, never on untyped field probing.
type Result interface {
	resultKind() Kind
}

// DigitSpanResult reports whether the sequence was reproduced exactly.
type DigitSpanResult struct {
	Correct bool `json:"correct"`
}

// ChoiceResult reports whether the selected option was the right one.
type ChoiceResult struct {
	Correct bool `json:"correct"`
}

// FluencyResult carries the count of valid unique answers given in time.
type FluencyResult struct {
	ValidCount int `json:"validCount"`
}

// AttentionResult carries click accuracy for the selective-attention task.
type AttentionResult struct {
	Errors        int `json:"errors"`
	CorrectClicks int `json:"correctClicks"`
}

func (DigitSpanResult) resultKind() Kind { return KindDigitSpan }
func (ChoiceResult) resultKind() Kind { return KindChoice }
func (FluencyResult) resultKind() Kind { return KindFluency }
func (AttentionResult) resultKind() Kind { return KindAttention }
