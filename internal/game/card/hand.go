package card

import (
	"slices"
	"strings"
)

// IndexOf 返回手牌中第一张与 c 相同的牌的位置，找不到返回 -1
func IndexOf(hand []Card, c Card) int {
	return slices.Index(hand, c)
}

// Remove 从手牌中移除一张 c，返回新手牌以及是否找到
func Remove(hand []Card, c Card) ([]Card, bool) {
	i := IndexOf(hand, c)
	if i < 0 {
		return hand, false
	}
	return slices.Delete(hand, i, i+1), true
}

// Playable 返回手牌中所有能接 current 的牌（保持原顺序）
func Playable(hand []Card, current Card) []Card {
	var playable []Card
	for _, c := range hand {
		if Matches(c, current) {
			playable = append(playable, c)
		}
	}
	return playable
}

// CountByColor 按颜色统计手牌
func CountByColor(hand []Card) map[Color]int {
	counts := make(map[Color]int)
	for _, c := range hand {
		counts[c.Color]++
	}
	return counts
}

// FormatHand 将手牌格式化为 "Red Five, Wild DrawFour"
func FormatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
