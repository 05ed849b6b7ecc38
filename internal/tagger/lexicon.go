package tagger

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dgallion1/linetag/internal/pos"
)

// closedClass lists the function words of English by category. Open-class
// words (nouns, verbs, adjectives, adverbs) are guessed from their shape.
var closedClass = map[pos.Category][]string{
	pos.DET: {
		"a", "an", "the", "this", "that", "these", "those", "each", "every",
		"either", "neither", "another", "any", "some", "no", "all", "both",
		"whatever", "whichever", "what", "which", "whose",
	},
	pos.PRON: {
		"i", "me", "my", "mine", "myself", "you", "your", "yours", "yourself",
		"yourselves", "he", "him", "his", "himself", "she", "her", "hers",
		"herself", "it", "its", "itself", "we", "us", "our", "ours",
		"ourselves", "they", "them", "their", "theirs", "themselves", "who",
		"whom", "someone", "somebody", "something", "anyone", "anybody",
		"anything", "everyone", "everybody", "everything", "nobody",
		"nothing", "none", "one", "thee", "thou", "thy", "thine", "ye",
	},
	pos.ADP: {
		"of", "in", "on", "at", "by", "for", "with", "about", "against",
		"between", "into", "through", "during", "before", "after", "above",
		"below", "to", "from", "up", "down", "out", "off", "over", "under",
		"around", "among", "across", "behind", "beyond", "near", "upon",
		"within", "without", "toward", "towards", "despite", "except",
		"inside", "outside", "onto", "per", "via", "like", "unlike", "till",
		"beneath", "beside", "besides", "along", "amid", "throughout", "o'er",
	},
	pos.AUX: {
		"am", "is", "are", "was", "were", "be", "been", "being", "have",
		"has", "had", "do", "does", "did", "will", "would", "shall",
		"should", "can", "could", "may", "might", "must", "isn't", "aren't", "wasn't",
		"weren't", "don't", "doesn't", "didn't", "won't", "wouldn't",
		"can't", "couldn't", "shouldn't", "mustn't", "hasn't", "haven't",
		"hadn't", "art", "hast", "hath", "doth", "shalt", "wilt",
	},
	pos.CCONJ: {
		"and", "or", "but", "nor", "yet", "so", "plus",
	},
	pos.SCONJ: {
		"if", "because", "although", "though", "while", "whereas", "unless",
		"until", "since", "whether", "than", "as", "once", "lest", "whenever",
		"wherever", "that",
	},
	pos.PART: {
		"not", "to",
	},
	pos.INTJ: {
		"oh", "ah", "hey", "hello", "hi", "wow", "yes", "no", "okay", "ok",
		"alas", "oops", "ouch", "hmm", "uh", "um", "bye", "goodbye", "please",
		"thanks", "o", "hurrah", "hooray", "well",
	},
	pos.ADV: {
		"not", "very", "too", "also", "just", "only", "even", "still",
		"already", "always", "never", "often", "sometimes", "soon", "now",
		"then", "here", "there", "where", "when", "why", "how", "again",
		"ever", "quite", "rather", "almost", "perhaps", "maybe", "away",
		"back", "forth", "together", "today", "tomorrow", "yesterday",
		"tonight", "once", "twice", "else", "instead", "indeed", "thus",
		"hence", "however", "therefore", "otherwise", "far", "much", "more",
		"most", "less", "least", "yet",
	},
}

// precedence decides which category wins when a word appears in more than
// one closed-class list. Earlier entries win.
var precedence = []pos.Category{
	pos.PART, pos.AUX, pos.PRON, pos.DET, pos.CCONJ, pos.SCONJ, pos.ADP,
	pos.INTJ, pos.ADV,
}

func defaultLexicon() map[string]pos.Category {
	lex := make(map[string]pos.Category, 512)
	for i := len(precedence) - 1; i >= 0; i-- {
		c := precedence[i]
		for _, w := range closedClass[c] {
			lex[w] = c
		}
	}
	return lex
}

type lexiconFile struct {
	Words map[string]string `toml:"words"`
}

// LoadLexicon reads word overrides from a TOML file of the form
//
//	[words]
//	stress = "NOUN"
//	gonna = "AUX"
//
// Keys are matched case-insensitively. SPACE is not a valid word category.
func LoadLexicon(path string) (map[string]pos.Category, error) {
	var f lexiconFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode lexicon %s: %w", path, err)
	}
	lex := make(map[string]pos.Category, len(f.Words))
	for word, tag := range f.Words {
		c, err := pos.ParseCategory(tag)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s: word %q: %w", path, word, err)
		}
		if c == pos.SPACE {
			return nil, fmt.Errorf("lexicon %s: word %q: SPACE is reserved for whitespace", path, word)
		}
		lex[strings.ToLower(word)] = c
	}
	return lex, nil
}
