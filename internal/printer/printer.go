// Package printer renders store entities for terminal output.
package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/mcpswitch/mcpswitch/internal/store"
)

var (
	headerColor = color.New(color.Bold)
	idColor     = color.New(color.FgHiBlack)
	activeColor = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
)

// Servers prints a server list sorted by name.
func Servers(w io.Writer, servers []store.Server) {
	if len(servers) == 0 {
		fmt.Fprintln(w, "No servers configured.")
		return
	}

	sorted := make([]store.Server, len(servers))
	copy(sorted, servers)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	headerColor.Fprintf(w, "Servers (%d):\n", len(sorted))
	for _, srv := range sorted {
		value := store.ParseServerValue(srv.Value)
		if !value.Parsed() {
			fmt.Fprintf(w, "  %s %s  ", srv.Name, warnColor.Sprint("(malformed config)"))
			idColor.Fprintf(w, "[%s]\n", srv.ID)
			continue
		}

		fmt.Fprintf(w, "  %s  %s %s  ", srv.Name, value.Config.Command, strings.Join(value.Config.Args, " "))
		idColor.Fprintf(w, "[%s]\n", srv.ID)
	}
}

// Categories prints a category list sorted by name, marking the ones that are
// active for some target.
func Categories(w io.Writer, st store.Store, categories []store.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories configured.")
		return
	}

	activeBy := map[string][]string{}
	for target, categoryID := range st.ActiveCategories {
		if categoryID != "" {
			activeBy[categoryID] = append(activeBy[categoryID], target)
		}
	}

	sorted := make([]store.Category, len(categories))
	copy(sorted, categories)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	headerColor.Fprintf(w, "Categories (%d):\n", len(sorted))
	for _, cat := range sorted {
		fmt.Fprintf(w, "  %s (target: %s, servers: %d)  ", cat.Name, cat.Target, len(st.CategoryServers(cat.ID)))
		idColor.Fprintf(w, "[%s]", cat.ID)
		if targets, ok := activeBy[cat.ID]; ok {
			sort.Strings(targets)
			activeColor.Fprintf(w, "  active for %s", strings.Join(targets, ", "))
		}
		fmt.Fprintln(w)
	}
}

// ConfigTargets prints a target list sorted by name with active categories
// and the selected filter.
func ConfigTargets(w io.Writer, st store.Store, targets []store.ConfigTarget) {
	if len(targets) == 0 {
		fmt.Fprintln(w, "No config targets configured.")
		return
	}

	sorted := make([]store.ConfigTarget, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	headerColor.Fprintf(w, "Config targets (%d):\n", len(sorted))
	for _, tgt := range sorted {
		builtIn := ""
		if tgt.IsBuiltIn {
			builtIn = " (built-in)"
		}

		fmt.Fprintf(w, "  %s%s  %s  ", tgt.Name, builtIn, tgt.ConfigPath)
		idColor.Fprintf(w, "[%s]", tgt.ID)
		if cat, ok := st.ActiveCategoryFor(tgt.ID); ok {
			activeColor.Fprintf(w, "  active: %s", cat.Name)
		}
		if st.SelectedTarget == tgt.ID {
			fmt.Fprint(w, "  «selected»")
		}
		fmt.Fprintln(w)
	}
}
