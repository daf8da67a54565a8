package ports

import "github.com/baditaflorin/go_sts_similarity/internal/core/domain"

// Tokenizer splits a raw sentence into lowercase word and punctuation tokens.
type Tokenizer interface {
	Tokenize(text string) domain.TokenSequence
}
