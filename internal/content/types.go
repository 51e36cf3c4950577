// internal/content/types.go
//
// Fixed lesson content for the three mini-games.
// Defines:
//   - QuizItem:     one multiple-choice question.
//   - MatchCard:    one face of a word/meaning pair in the memory game.
//   - SortableWord: one draggable word and the category it belongs to.
//   - Set:          the whole dataset, loaded once at startup.

package content

// CardKind tells a word card apart from a meaning card.
type CardKind string

const (
	KindWord    CardKind = "word"
	KindMeaning CardKind = "meaning"
)

// QuizItem is a multiple-choice question with exactly one correct option.
type QuizItem struct {
	Prompt  string   `json:"prompt" validate:"required"`
	Options []string `json:"options" validate:"len=4,unique,dive,required"`
	Correct string   `json:"correct" validate:"required"`
}

// MatchCard is one card of the matching grid. Word and meaning cards that
// belong together share a PairKey.
type MatchCard struct {
	ID      int      `json:"id" validate:"required"`
	Kind    CardKind `json:"kind" validate:"oneof=word meaning"`
	Content string   `json:"content" validate:"required"`
	PairKey int      `json:"pairKey" validate:"required"`
	Audio   string   `json:"audio,omitempty" validate:"omitempty,url"`
}

// SortableWord is a word token for the sorting game.
type SortableWord struct {
	ID       string `json:"id" validate:"required"`
	Word     string `json:"word" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Set bundles all game content. It is treated as immutable once loaded.
type Set struct {
	Quiz       []QuizItem     `json:"quiz" validate:"required,min=1,dive"`
	Cards      []MatchCard    `json:"cards" validate:"required,min=2,dive"`
	Words      []SortableWord `json:"words" validate:"required,min=1,dive"`
	Categories []string       `json:"categories" validate:"required,min=1,unique,dive,required"`
}

// PairCount returns the number of distinct pair keys among the cards.
func (s Set) PairCount() int {
	keys := make(map[int]struct{}, len(s.Cards)/2)
	for _, c := range s.Cards {
		keys[c.PairKey] = struct{}{}
	}
	return len(keys)
}
