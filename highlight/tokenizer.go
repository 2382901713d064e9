package highlight

import (
	"github.com/alecthomas/chroma/v2"
)

// Tokenizer produces the flat token stream of one full highlighting
// pass. Implementations carrying cross-line state must reset it at the
// start of every call so that passes stay independent of each other.
type Tokenizer interface {
	Tokenise(text string) ([]chroma.Token, error)
}

type chromaTokenizer struct {
	lexer chroma.Lexer
}

func (t chromaTokenizer) Tokenise(text string) ([]chroma.Token, error) {
	// The default options rewrite CRLF into LF inside token values,
	// which would break the exact reassembly of the source text.
	it, err := t.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, err
	}
	return it.Tokens(), nil
}
