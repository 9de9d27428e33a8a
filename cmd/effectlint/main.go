// effectlint validates an effect definitions file without starting the
// simulation. Exit code 1 means the file would be rejected at boot.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/starforge/sim/internal/data"
)

func main() {
	verbose := flag.Bool("v", false, "print every effect definition")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: effectlint [-v] <effects.yaml>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	tbl, err := data.LoadEffectTable(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "effectlint: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d effect(s) OK\n", path, tbl.Len())
	if !*verbose {
		return
	}

	var names []string
	tbl.Each(func(tpl *data.EffectTemplate) {
		names = append(names, tpl.Name)
	})
	sort.Strings(names)
	for _, name := range names {
		tpl, _ := tbl.Get(name)
		fmt.Printf("  %-24s shape=%-7s count=[%d,%d] life=[%d,%d]ms",
			tpl.Name, tpl.Shape, tpl.CountMin, tpl.CountMax,
			tpl.ParticleLifeMinMs, tpl.ParticleLifeMaxMs)
		if tpl.DurationMs > 0 {
			fmt.Printf(" window=%dms", tpl.DurationMs)
		}
		if tpl.OneShot {
			fmt.Print(" one-shot")
		}
		if tpl.Curve != "" {
			fmt.Printf(" curve=%s", tpl.Curve)
		}
		fmt.Println()
	}
}
