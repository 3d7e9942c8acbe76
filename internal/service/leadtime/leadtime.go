package leadtime

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

const (
	LevelUndefined = "undefined"
	LevelShort     = "short"
	LevelMedium    = "medium"
	LevelLong      = "long"
)

// Upper bounds, in days, of the short and medium badges.
const (
	ShortMaxDays  = 7
	MediumMaxDays = 21
)

type Badge struct {
	Level string `json:"level"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// Calculate sums the stage durations of a plan and rounds to whole days.
// No calendar is applied here.
func Calculate(plan []storage.Stage) int {
	total := decimal.Zero
	for _, s := range plan {
		if s.DurationDays <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(s.DurationDays))
	}

	return int(total.Round(0).IntPart())
}

func Classify(days int) Badge {
	switch {
	case days <= 0:
		return Badge{Level: LevelUndefined, Color: "gray", Label: "Indefinido"}
	case days <= ShortMaxDays:
		return Badge{Level: LevelShort, Color: "green", Label: label(days)}
	case days <= MediumMaxDays:
		return Badge{Level: LevelMedium, Color: "yellow", Label: label(days)}
	default:
		return Badge{Level: LevelLong, Color: "red", Label: label(days)}
	}
}

func label(days int) string {
	if days == 1 {
		return "1 dia"
	}
	return fmt.Sprintf("%d dias", days)
}
