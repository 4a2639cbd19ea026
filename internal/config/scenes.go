package config

import (
	"math"
	"sort"

	"github.com/san-kum/fieldtrace/internal/emfield"
)

// Scenes are built-in starting layouts. They live in source, not on
// disk; placed charges remain ephemeral for the whole session.
var Scenes = map[string]func() []emfield.Charge{
	"dipole": func() []emfield.Charge {
		return []emfield.Charge{
			{Position: emfield.Vec3{X: -8, Y: 0, Z: 0}, Value: 2.0},
			{Position: emfield.Vec3{X: 8, Y: 0, Z: 0}, Value: -2.0},
		}
	},
	"quadrupole": func() []emfield.Charge {
		return []emfield.Charge{
			{Position: emfield.Vec3{X: -6, Y: 0, Z: -6}, Value: 2.0},
			{Position: emfield.Vec3{X: 6, Y: 0, Z: -6}, Value: -2.0},
			{Position: emfield.Vec3{X: 6, Y: 0, Z: 6}, Value: 2.0},
			{Position: emfield.Vec3{X: -6, Y: 0, Z: 6}, Value: -2.0},
		}
	},
	"row": func() []emfield.Charge {
		charges := make([]emfield.Charge, 0, 5)
		for i := 0; i < 5; i++ {
			v := 1.0
			if i%2 == 1 {
				v = -1.0
			}
			charges = append(charges, emfield.Charge{
				Position: emfield.Vec3{X: float64(i-2) * 5},
				Value:    v,
			})
		}
		return charges
	},
	"ring": func() []emfield.Charge {
		n := 6
		charges := make([]emfield.Charge, 0, n+1)
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			charges = append(charges, emfield.Charge{
				Position: emfield.Vec3{X: 10 * math.Cos(a), Z: 10 * math.Sin(a)},
				Value:    1.0,
			})
		}
		charges = append(charges, emfield.Charge{Value: -4.0})
		return charges
	},
	"single": func() []emfield.Charge {
		return []emfield.Charge{{Value: 2.0}}
	},
}

// GetScene returns a fresh copy of a named layout, or nil when the
// name is unknown.
func GetScene(name string) []emfield.Charge {
	fn, ok := Scenes[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListScenes() []string {
	names := make([]string, 0, len(Scenes))
	for name := range Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
