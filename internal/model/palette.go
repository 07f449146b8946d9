package model

// Palette is the fixed set of display colors for task bars. Tasks that
// arrive without a color token are assigned one round-robin at load time.
var Palette = []string{
	"#4ECDC4", // teal
	"#FF6B6B", // red
	"#FFB347", // orange
	"#95E1A3", // green
	"#B39DDB", // purple
	"#64B5F6", // blue
	"#FFE66D", // yellow
	"#F48FB1", // pink
}

// AssignColors fills in missing color tokens across the whole phase tree,
// cycling through the palette in task order. Tasks that already carry a
// token keep it; the round-robin counter still advances so reloads stay
// stable as long as the task order does.
func AssignColors(phases []Phase) {
	i := 0
	for p := range phases {
		for t := range phases[p].Tasks {
			if phases[p].Tasks[t].ColorToken == "" {
				phases[p].Tasks[t].ColorToken = Palette[i%len(Palette)]
			}
			i++
		}
	}
}
