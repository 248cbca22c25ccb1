package models

import (
	"fmt"
	"strings"
)

// Rank is one of the twelve fixed personnel grade codes.
type Rank string

const (
	RankSxhs     Rank = "sxhs"
	RankAnxhs    Rank = "anxhs"
	RankTxhs     Rank = "txhs"
	RankLgos     Rank = "lgos"
	RankYplgos   Rank = "yplgos"
	RankAnthlgos Rank = "anthlgos"
	RankAnthstis Rank = "anthstis"
	RankAlxias   Rank = "alxias"
	RankEpxias   Rank = "epxias"
	RankLxias    Rank = "lxias"
	RankDneas    Rank = "dneas"
	RankMy       Rank = "my"
)

// Ranks returns all rank codes in their fixed display order.
func Ranks() []Rank {
	return []Rank{
		RankSxhs, RankAnxhs, RankTxhs, RankLgos, RankYplgos, RankAnthlgos,
		RankAnthstis, RankAlxias, RankEpxias, RankLxias, RankDneas, RankMy,
	}
}

// ParseRank converts user input into a Rank, rejecting anything outside the closed set.
func ParseRank(s string) (Rank, error) {
	r := Rank(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid rank: %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the twelve codes.
func (r Rank) Valid() bool {
	switch r {
	case RankSxhs, RankAnxhs, RankTxhs, RankLgos, RankYplgos, RankAnthlgos,
		RankAnthstis, RankAlxias, RankEpxias, RankLxias, RankDneas, RankMy:
		return true
	}
	return false
}
