package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/paperclass/internal/model"
)

// KeywordSet is an immutable, ordered set of lowercase phrases
type KeywordSet struct {
	name    string
	phrases []string
}

// NewKeywordSet lowercases and trims the phrases, dropping blanks and duplicates
func NewKeywordSet(name string, phrases ...string) KeywordSet {
	seen := make(map[string]bool, len(phrases))
	set := KeywordSet{name: name}
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		set.phrases = append(set.phrases, p)
	}
	return set
}

// Name returns the set's label
func (k KeywordSet) Name() string {
	return k.name
}

// Len returns the number of phrases
func (k KeywordSet) Len() int {
	return len(k.phrases)
}

// Phrases returns a copy of the phrases in declaration order
func (k KeywordSet) Phrases() []string {
	return append([]string(nil), k.phrases...)
}

// ContainsAny reports whether any phrase occurs in text as a plain substring.
// text must already be lowercase.
func (k KeywordSet) ContainsAny(text string) bool {
	for _, p := range k.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Taxonomy groups the four keyword sets
type Taxonomy struct {
	TextMining     KeywordSet
	ComputerVision KeywordSet
	Both           KeywordSet // Overlap techniques; wins category precedence
	Other          KeywordSet // General AI; method extraction only
}

// Sets returns the four sets in extraction order
func (t Taxonomy) Sets() []KeywordSet {
	return []KeywordSet{t.TextMining, t.ComputerVision, t.Both, t.Other}
}

// Validate rejects a taxonomy with an empty set
func (t Taxonomy) Validate() error {
	for _, set := range t.Sets() {
		if set.Len() == 0 {
			return fmt.Errorf("%w: keyword set %q is empty", model.ErrConfiguration, set.Name())
		}
	}
	return nil
}

// DefaultTaxonomy returns the built-in deep learning method taxonomy
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		TextMining: NewKeywordSet("text_mining",
			"natural language processing", "text mining", "NLP", "computational linguistics",
			"RNN", "recurrent neural network", "language modeling", "text analysis",
			"computational semantics", "text data analysis", "text analytics",
			"textual data analysis", "speech and language technology", "language processing",
			"LSTM", "pretrained language model", "long short-term memory network",
			"large language model", "llm", "generative language model",
		),
		ComputerVision: NewKeywordSet("computer_vision",
			"computer vision", "vision model", "image processing", "vision algorithms",
			"computer graphics and vision", "object recognition", "diffusion model",
			"scene understanding", "vision transformer", "CNN", "convolutional neural network",
			"generative diffusion model", "diffusion-based generative model",
			"continuous diffusion model",
		),
		Both: NewKeywordSet("both",
			"neural network", "artificial neural network", "generative AI",
			"neural net algorithm", "foundation model", "multilayer perceptron",
			"transformer models", "self-attention models", "transformer architecture",
			"attention-based neural networks", "transformer networks",
			"transformer-based model", "multimodal neural network",
			"sequence-to-sequence models", "generative artificial intelligence",
		),
		Other: NewKeywordSet("other",
			"deep learning", "machine learning model", "deep neural networks",
			"generative deep learning", "GRNN", "regression", "artificial intelligence",
			"feedforward neural network", "generative models", "multimodal model",
		),
	}
}
