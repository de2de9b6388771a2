package card

import (
	"fmt"
	"strings"
)

// Color 定义牌的颜色
type Color int

// Kind 定义牌面（数字或功能牌）
type Kind int

// Card 定义一张牌
type Card struct {
	Color Color
	Kind  Kind
}

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Wild // 万能牌
)

const (
	WildCard Kind = iota // 变色
	DrawFour             // +4
	DrawTwo              // +2
	Cancel               // 禁止
	Reverse              // 反转
	Zero
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
)

// colorNames 颜色名称映射表
var colorNames = map[Color]string{
	Red:    "Red",
	Blue:   "Blue",
	Green:  "Green",
	Yellow: "Yellow",
	Wild:   "Wild",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Valid 是否为已定义的颜色
func (c Color) Valid() bool {
	return c >= Red && c <= Wild
}

// kindNames 牌面名称映射表
var kindNames = map[Kind]string{
	WildCard: "WildCard",
	DrawFour: "DrawFour",
	DrawTwo:  "DrawTwo",
	Cancel:   "Cancel",
	Reverse:  "Reverse",
	Zero:     "Zero",
	One:      "One",
	Two:      "Two",
	Three:    "Three",
	Four:     "Four",
	Five:     "Five",
	Six:      "Six",
	Seven:    "Seven",
	Eight:    "Eight",
	Nine:     "Nine",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid 是否为已定义的牌面
func (k Kind) Valid() bool {
	return k >= WildCard && k <= Nine
}

// IsNumber 是否为数字牌
func (k Kind) IsNumber() bool {
	return k >= Zero && k <= Nine
}

func (c Card) String() string {
	return c.Color.String() + " " + c.Kind.String()
}

// Matches 判断 candidate 能否压在 current 之上：
// 万能牌总是可以出，否则颜色相同或牌面相同即可（红5可以接蓝5）。
func Matches(candidate, current Card) bool {
	if candidate.Color == Wild {
		return true
	}
	return candidate.Color == current.Color || candidate.Kind == current.Kind
}

// wordToColor 用于解析输入的颜色
var wordToColor = map[string]Color{
	"red":    Red,
	"r":      Red,
	"blue":   Blue,
	"b":      Blue,
	"green":  Green,
	"g":      Green,
	"yellow": Yellow,
	"y":      Yellow,
	"wild":   Wild,
	"w":      Wild,
}

var wordToKind = map[string]Kind{
	"wildcard": WildCard,
	"wild":     WildCard,
	"drawfour": DrawFour,
	"draw4":    DrawFour,
	"+4":       DrawFour,
	"drawtwo":  DrawTwo,
	"draw2":    DrawTwo,
	"+2":       DrawTwo,
	"cancel":   Cancel,
	"skip":     Cancel,
	"reverse":  Reverse,
	"0":        Zero,
	"zero":     Zero,
	"1":        One,
	"one":      One,
	"2":        Two,
	"two":      Two,
	"3":        Three,
	"three":    Three,
	"4":        Four,
	"four":     Four,
	"5":        Five,
	"five":     Five,
	"6":        Six,
	"six":      Six,
	"7":        Seven,
	"seven":    Seven,
	"8":        Eight,
	"eight":    Eight,
	"9":        Nine,
	"nine":     Nine,
}

// Parse 解析形如 "red 5"、"blue reverse"、"wild draw4" 的输入。
// 单独的 "wild" 表示变色牌。
func Parse(s string) (Card, error) {
	fields := strings.Fields(strings.ToLower(s))
	switch len(fields) {
	case 1:
		if fields[0] == "wild" || fields[0] == "wildcard" {
			return Card{Color: Wild, Kind: WildCard}, nil
		}
	case 2:
		color, ok := wordToColor[fields[0]]
		if !ok {
			return Card{}, fmt.Errorf("无法识别的颜色: %q", fields[0])
		}
		kind, ok := wordToKind[fields[1]]
		if !ok {
			return Card{}, fmt.Errorf("无法识别的牌面: %q", fields[1])
		}
		c := Card{Color: color, Kind: kind}
		if (color == Wild) != (kind == WildCard || kind == DrawFour) {
			return Card{}, fmt.Errorf("不存在的牌: %s", c)
		}
		return c, nil
	}
	return Card{}, fmt.Errorf("无法解析的牌: %q", s)
}
