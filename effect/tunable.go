package effect

import (
	"errors"
	"fmt"
	"math"

	"go-ledfield/settings"
)

type tunable struct {
	key    string
	dst    *float64
	lo, hi float64
}

func persistTunables(src settings.Source, section string, ts []tunable) {
	for _, t := range ts {
		settings.SetFloat(src, section, t.key, *t.dst)
	}
}

func restoreTunables(src settings.Source, section string, ts []tunable) error {
	var errs []error
	for _, t := range ts {
		if err := settings.Float(src, section, t.key, t.dst, t.lo, t.hi); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// twoSpeed maps the fine/coarse increment keys onto a signed step.
//
//	j: -fine  J: -coarse  k: +fine  K: +coarse
func twoSpeed(key string, fine, coarse float64) (float64, bool) {
	switch key {
	case "k":
		return fine, true
	case "K":
		return coarse, true
	case "j":
		return -fine, true
	case "J":
		return -coarse, true
	}
	return 0, false
}

func nudge(v *float64, delta, lo, hi float64) {
	*v = math.Max(lo, math.Min(hi, *v+delta))
}

func fmtf(format string, v float64) string {
	return fmt.Sprintf(format, v)
}
