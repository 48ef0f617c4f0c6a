package variant

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
)

// DefaultVariant 默认变体名
const DefaultVariant = "No Variant"

const reversedSuffix = " Reversed"

//go:embed variants.yaml
var builtinData []byte

type catalogFile struct {
	Suits    []Suit         `yaml:"suits"`
	Variants []variantEntry `yaml:"variants"`
}

type variantEntry struct {
	ID                     int          `yaml:"id"`
	Name                   string       `yaml:"name"`
	Suits                  []string     `yaml:"suits"`
	Ranks                  []card.Rank  `yaml:"ranks"`
	ClueRanks              *[]card.Rank `yaml:"clue_ranks"`
	ClueColors             *[]string    `yaml:"clue_colors"`
	UpOrDown               bool         `yaml:"up_or_down"`
	CriticalFours          bool         `yaml:"critical_fours"`
	ColorCluesTouchNothing bool         `yaml:"color_clues_touch_nothing"`
	RankCluesTouchNothing  bool         `yaml:"rank_clues_touch_nothing"`
}

// Catalog 按名称索引的变体集合
type Catalog struct {
	variants map[string]*Variant
	names    []string
}

// Builtin 返回内置变体目录
func Builtin() *Catalog {
	c, err := ParseCatalog(builtinData)
	if err != nil {
		panic(fmt.Sprintf("内置变体目录无效: %v", err))
	}
	return c
}

// LoadCatalog 从 YAML 文件加载变体目录
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog 解析 YAML 变体目录
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析变体目录失败: %w", err)
	}

	suits := make(map[string]Suit, len(file.Suits))
	for _, s := range file.Suits {
		if s.Name == "" {
			return nil, fmt.Errorf("花色缺少名称")
		}
		if _, dup := suits[s.Name]; dup {
			return nil, fmt.Errorf("重复的花色: %s", s.Name)
		}
		if len(s.ClueColors) == 0 && !s.AllClueColors && !s.NoClueColors {
			s.ClueColors = []string{s.Name}
		}
		suits[s.Name] = s
	}

	c := &Catalog{variants: make(map[string]*Variant, len(file.Variants))}
	ids := make(map[int]string, len(file.Variants))
	for _, e := range file.Variants {
		if prev, dup := ids[e.ID]; dup {
			return nil, fmt.Errorf("变体 %q 与 %q 的 ID %d 重复", e.Name, prev, e.ID)
		}
		ids[e.ID] = e.Name
		if _, dup := c.variants[e.Name]; dup {
			return nil, fmt.Errorf("重复的变体: %s", e.Name)
		}

		v, err := e.build(suits)
		if err != nil {
			return nil, err
		}
		c.variants[v.Name] = v
		c.names = append(c.names, v.Name)
	}
	return c, nil
}

func (e variantEntry) build(suits map[string]Suit) (*Variant, error) {
	if len(e.Suits) == 0 {
		return nil, fmt.Errorf("变体 %q 没有花色", e.Name)
	}

	v := &Variant{
		ID:                     e.ID,
		Name:                   e.Name,
		Ranks:                  slices.Clone(DefaultRanks),
		UpOrDown:               e.UpOrDown,
		CriticalFours:          e.CriticalFours,
		ColorCluesTouchNothing: e.ColorCluesTouchNothing,
		RankCluesTouchNothing:  e.RankCluesTouchNothing,
	}
	if len(e.Ranks) > 0 {
		v.Ranks = slices.Clone(e.Ranks)
	}
	for _, r := range v.Ranks {
		if r < card.Rank1 {
			return nil, fmt.Errorf("变体 %q 含有无效点数 %d", e.Name, r)
		}
	}

	for _, name := range e.Suits {
		s, err := lookupSuit(suits, name)
		if err != nil {
			return nil, fmt.Errorf("变体 %q: %w", e.Name, err)
		}
		if e.ClueColors != nil && !slices.Contains(*e.ClueColors, s.Name) {
			s.ClueColors = nil
		}
		v.Suits = append(v.Suits, s)
	}

	if e.ClueRanks != nil {
		v.ClueRanks = slices.Clone(*e.ClueRanks)
	} else {
		for _, r := range v.Ranks {
			if r != card.StartRank {
				v.ClueRanks = append(v.ClueRanks, r)
			}
		}
	}
	return v, nil
}

// lookupSuit 解析花色名，支持 "X Reversed" 形式
func lookupSuit(suits map[string]Suit, name string) (Suit, error) {
	if s, ok := suits[name]; ok {
		s.ClueColors = slices.Clone(s.ClueColors)
		return s, nil
	}
	if base, ok := strings.CutSuffix(name, reversedSuffix); ok {
		s, err := lookupSuit(suits, base)
		if err != nil {
			return Suit{}, err
		}
		s.Name = name
		s.Reversed = true
		return s, nil
	}
	return Suit{}, fmt.Errorf("未知花色: %s", name)
}

// Get 按名称查找变体
func (c *Catalog) Get(name string) (*Variant, error) {
	v, ok := c.variants[name]
	if !ok {
		return nil, apperrors.ErrUnknownVariant.Wrapf("%q", name)
	}
	return v, nil
}

// Names 按文件顺序返回全部变体名
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Len 变体数量
func (c *Catalog) Len() int {
	return len(c.names)
}
