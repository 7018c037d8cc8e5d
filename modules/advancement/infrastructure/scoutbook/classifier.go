package scoutbook

import (
	"strings"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

// knownRanks are the rank names a "<Rank> Rank Requirements" type may
// carry. Anything else with that shape is out of scope.
var knownRanks = map[string]string{
	"scout":        "scout",
	"tenderfoot":   "tenderfoot",
	"second class": "second_class",
	"first class":  "first_class",
	"star":         "star",
	"life":         "life",
	"eagle":        "eagle",
}

const (
	rankReqSuffix  = " rank requirements"
	badgeReqSuffix = " merit badge requirements"
)

// Classification is the outcome of classifying one advancement type
// cell. Subject carries the rank or badge code for requirement kinds
// and is empty otherwise.
type Classification struct {
	Kind    advancement.Kind
	Subject string
	InScope bool
}

// Classify maps the Advancement Type cell to one of the four record
// kinds. The match is total: every input classifies either to a kind
// or to out-of-scope, never to an error.
func Classify(advancementType string) Classification {
	t := strings.ToLower(strings.TrimSpace(advancementType))
	switch t {
	case "rank":
		return Classification{Kind: advancement.KindRank, InScope: true}
	case "merit badge":
		return Classification{Kind: advancement.KindMeritBadge, InScope: true}
	}
	if name, ok := strings.CutSuffix(t, rankReqSuffix); ok {
		if code, known := knownRanks[strings.TrimSpace(name)]; known {
			return Classification{
				Kind:    advancement.KindRankRequirement,
				Subject: code,
				InScope: true,
			}
		}
		return Classification{}
	}
	if name, ok := strings.CutSuffix(t, badgeReqSuffix); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return Classification{}
		}
		return Classification{
			Kind:    advancement.KindMeritBadgeRequirement,
			Subject: tabular.NormalizeCode(name),
			InScope: true,
		}
	}
	return Classification{}
}

// RankCode normalizes a rank display name to its stored code, or ""
// when the name is not a recognized rank.
func RankCode(name string) string {
	return knownRanks[strings.ToLower(strings.TrimSpace(name))]
}
