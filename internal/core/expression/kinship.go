package expression

import (
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

const (
	// self is the person every chain starts from.
	self = "我"

	// connective joins the segments of a possessive chain.
	connective = "的"
)

// KinshipGraph resolves possessive chains such as 妈妈的爸爸.
// relations[rel][person] is "my <person>'s <rel>", expressed relative to me.
type KinshipGraph struct {
	relations map[string]map[string]string
	aliases   map[string]string
}

// NewKinshipGraph creates a graph over relations and aliases.
func NewKinshipGraph(relations map[string]map[string]string, aliases map[string]string) *KinshipGraph {
	return &KinshipGraph{relations: relations, aliases: aliases}
}

// Resolve recognizes a possessive chain and names the relative it denotes.
// Any step with no graph entry makes the whole chain unrecognized.
func (g *KinshipGraph) Resolve(input string) (domain.Calculation, bool) {
	text := trimQuestion(input)
	if !strings.Contains(text, connective) {
		return domain.Calculation{}, false
	}

	parts := strings.Split(text, connective)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return domain.Calculation{}, false
		}
		segments = append(segments, g.canonical(p))
	}

	person := self
	for _, rel := range segments[:len(segments)-1] {
		if rel == self {
			continue
		}
		next, ok := g.relations[rel][person]
		if !ok {
			return domain.Calculation{}, false
		}
		person = next
	}

	target := segments[len(segments)-1]
	var result string
	switch {
	case target == self:
		result = person
	case person == self:
		if _, known := g.relations[target]; !known {
			return domain.Calculation{}, false
		}
		result = target
	default:
		next, ok := g.relations[target][person]
		if !ok {
			return domain.Calculation{}, false
		}
		result = next
	}

	return domain.Calculation{
		Kind:    domain.CalculationKinship,
		Formula: text,
		Result:  result,
	}, true
}

func (g *KinshipGraph) canonical(term string) string {
	if c, ok := g.aliases[term]; ok {
		return c
	}
	return term
}

// trimQuestion strips a trailing "是谁" and question marks.
func trimQuestion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "?？")
	s = strings.TrimSuffix(s, "是谁")
	s = strings.TrimSuffix(s, "叫什么")
	return strings.TrimSpace(s)
}

// DefaultKinshipGraph returns the built-in relationship table.
// The table is partial; some in-law and descendant compositions have no entry.
func DefaultKinshipGraph() *KinshipGraph {
	relations := map[string]map[string]string{
		"爸爸": {
			self: "爸爸", "爸爸": "爷爷", "妈妈": "外公",
			"哥哥": "爸爸", "姐姐": "爸爸", "弟弟": "爸爸", "妹妹": "爸爸",
			"儿子": self, "女儿": self,
			"老公": "公公", "老婆": "岳父",
			"爷爷": "曾祖父", "外公": "外曾祖父",
		},
		"妈妈": {
			self: "妈妈", "爸爸": "奶奶", "妈妈": "外婆",
			"哥哥": "妈妈", "姐姐": "妈妈", "弟弟": "妈妈", "妹妹": "妈妈",
			"老公": "婆婆", "老婆": "岳母",
			"爷爷": "曾祖母", "外公": "外曾祖母",
		},
		"哥哥": {
			self: "哥哥", "爸爸": "伯父", "妈妈": "舅舅",
			"哥哥": "哥哥", "姐姐": "哥哥",
			"老公": "大伯子", "老婆": "大舅子",
		},
		"姐姐": {
			self: "姐姐", "爸爸": "姑妈", "妈妈": "姨妈",
			"姐姐": "姐姐", "哥哥": "姐姐",
			"老公": "大姑子", "老婆": "大姨子",
		},
		"弟弟": {
			self: "弟弟", "爸爸": "叔叔", "妈妈": "舅舅",
			"弟弟": "弟弟", "妹妹": "弟弟",
			"老公": "小叔子", "老婆": "小舅子",
		},
		"妹妹": {
			self: "妹妹", "爸爸": "姑姑", "妈妈": "姨妈",
			"妹妹": "妹妹", "弟弟": "妹妹",
			"老公": "小姑子", "老婆": "小姨子",
		},
		"儿子": {
			self: "儿子", "爸爸": self, "妈妈": self,
			"儿子": "孙子", "女儿": "外孙",
			"哥哥": "侄子", "弟弟": "侄子", "姐姐": "外甥", "妹妹": "外甥",
			"老公": "儿子", "老婆": "儿子",
		},
		"女儿": {
			self: "女儿", "爸爸": self, "妈妈": self,
			"儿子": "孙女", "女儿": "外孙女",
			"哥哥": "侄女", "弟弟": "侄女", "姐姐": "外甥女", "妹妹": "外甥女",
			"老公": "女儿", "老婆": "女儿",
		},
		"老公": {
			self: "老公", "妈妈": "爸爸", "女儿": "女婿",
			"姐姐": "姐夫", "妹妹": "妹夫",
		},
		"老婆": {
			self: "老婆", "爸爸": "妈妈", "儿子": "儿媳",
			"哥哥": "嫂子", "弟弟": "弟媳",
		},
		"爷爷": {self: "爷爷", "爸爸": "曾祖父"},
		"奶奶": {self: "奶奶", "爸爸": "曾祖母"},
		"外公": {self: "外公"},
		"外婆": {self: "外婆"},
	}

	aliases := map[string]string{
		"爸": "爸爸", "父亲": "爸爸", "老爸": "爸爸", "爹": "爸爸",
		"妈": "妈妈", "母亲": "妈妈", "老妈": "妈妈", "娘": "妈妈",
		"哥": "哥哥", "姐": "姐姐", "弟": "弟弟", "妹": "妹妹",
		"丈夫": "老公", "先生": "老公",
		"妻子": "老婆", "媳妇": "老婆", "太太": "老婆",
		"祖父": "爷爷", "祖母": "奶奶",
		"外祖父": "外公", "姥爷": "外公",
		"外祖母": "外婆", "姥姥": "外婆",
		"自己": self, "本人": self,
	}

	return NewKinshipGraph(relations, aliases)
}
