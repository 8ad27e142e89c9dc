package card

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// Deck is an ordered set of cards sharing one accent color.
type Deck struct {
	Name  string
	Color Color
	Cards []Card

	// Path is the file the deck was loaded from, if any.
	Path string
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int { return len(d.Cards) }

// At returns the card at index i, or false when i is out of range.
func (d *Deck) At(i int) (Card, bool) {
	if i < 0 || i >= len(d.Cards) {
		return Card{}, false
	}
	return d.Cards[i], true
}

type deckFile struct {
	Name      string       `json:"name" toml:"name"`
	DeckColor string       `json:"deck_color" toml:"deck_color"`
	Cards     []recordFile `json:"cards" toml:"cards"`
}

// recordFile mirrors a card entry on disk. Stat fields are pointers so that a
// unit missing some stats still loads with zero values for the rest.
type recordFile struct {
	Name    string `json:"name" toml:"name"`
	Type    string `json:"type" toml:"type"`
	ArtPath string `json:"art_path" toml:"art_path"`
	ATK     *int   `json:"atk" toml:"atk"`
	DEF     *int   `json:"def" toml:"def"`
	STB     *int   `json:"stb" toml:"stb"`
	INIT    *int   `json:"init" toml:"init"`
	RNG     *int   `json:"rng" toml:"rng"`
	MOVE    *int   `json:"move" toml:"move"`
}

// LoadDeck reads a deck from a .json or .toml file. Relative art paths are
// resolved against the deck file's directory.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cferrors.Wrap(cferrors.ErrCodeFileNotFound, err, "deck file not found").WithSubject(path)
		}
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidCard, err, "read deck").WithSubject(path)
	}

	var f deckFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidCard, err, "decode deck").WithSubject(path)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidCard, err, "decode deck").WithSubject(path)
		}
	}

	d, err := f.build(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	d.Path = path
	return d, nil
}

// ParseDeck decodes a JSON deck. Relative art paths are resolved against baseDir.
func ParseDeck(data []byte, baseDir string) (*Deck, error) {
	var f deckFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidCard, err, "decode deck")
	}
	return f.build(baseDir)
}

func (f deckFile) build(baseDir string) (*Deck, error) {
	d := &Deck{Name: f.Name, Cards: make([]Card, 0, len(f.Cards))}

	if f.DeckColor == "" {
		d.Color = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	} else {
		c, err := ParseColor(f.DeckColor)
		if err != nil {
			return nil, err
		}
		d.Color = c
	}

	for _, r := range f.Cards {
		d.Cards = append(d.Cards, r.card(baseDir))
	}
	return d, nil
}

// card converts a record. An empty name is kept; it renders no title.
func (r recordFile) card(baseDir string) Card {
	c := Card{Name: r.Name, ArtPath: r.ArtPath}

	switch Type(strings.ToLower(r.Type)) {
	case TypeUnit:
		c.Type = TypeUnit
		c.Stats = &Stats{
			ATK:  deref(r.ATK),
			DEF:  deref(r.DEF),
			STB:  deref(r.STB),
			INIT: deref(r.INIT),
			RNG:  deref(r.RNG),
			MOVE: deref(r.MOVE),
		}
	default:
		// Anything that is not a unit prints without a stat block.
		c.Type = TypeOther
	}

	if c.ArtPath != "" && !filepath.IsAbs(c.ArtPath) && baseDir != "" {
		c.ArtPath = filepath.Join(baseDir, c.ArtPath)
	}
	return c
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
