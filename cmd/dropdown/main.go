package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/search"
	"github.com/nikbrunner/dropdown/internal/source"
	"github.com/nikbrunner/dropdown/internal/tui"
)

func main() {
	var (
		multi    bool
		fuzzy    bool
		dbPath   string
		endpoint string
		dataset  string
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "--multi":
			multi = true
		case "--fuzzy":
			fuzzy = true
		case "--db":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Usage: dropdown --db <path>\n")
				os.Exit(1)
			}
			i++
			dbPath = args[i]
		case "--url":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Usage: dropdown --url <endpoint>\n")
				os.Exit(1)
			}
			i++
			endpoint = args[i]
		default:
			dataset = args[i]
		}
	}

	entries, remote, err := buildSource(dataset, dbPath, endpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	widget := tui.NewWidget(tui.WidgetParams{
		Entries: entries,
		Remote:  remote,
		Config: tui.Config{
			Multi:      multi,
			FuzzyMatch: fuzzy,
			Pagination: remote != nil,
		},
	})

	p := tea.NewProgram(widget, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running dropdown: %v\n", err)
		os.Exit(1)
	}

	finalWidget := finalModel.(tui.Widget)
	for _, value := range finalWidget.SelectedValues() {
		fmt.Println(value)
	}
}

// buildSource resolves the option source from the CLI arguments. A remote
// source (sqlite or HTTP) starts empty and is filled by searching.
func buildSource(dataset, dbPath, endpoint string) ([]model.Entry, source.DataSource, error) {
	switch {
	case dbPath != "":
		ds, err := source.NewSQLiteDataSource(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return nil, ds, nil

	case endpoint != "":
		remote := &search.HTTPSource{
			Transport: search.NewHTTPTransport(),
			Request:   search.Request{URL: endpoint},
		}
		return nil, remote, nil

	case dataset != "":
		entries, err := source.LoadYAML(dataset)
		if err != nil {
			return nil, nil, err
		}
		return entries, nil, nil
	}

	return demoEntries(), nil, nil
}

func demoEntries() []model.Entry {
	return []model.Entry{
		{Label: "Fruits", Children: []model.Entry{
			{Value: "apple", Text: "Apple"},
			{Value: "banana", Text: "Banana"},
			{Value: "cherry", Text: "Cherry"},
		}},
		{Label: "Vegetables", Children: []model.Entry{
			{Value: "carrot", Text: "Carrot"},
			{Value: "potato", Text: "Potato"},
		}},
		{Value: "water", Text: "Water"},
	}
}

func printHelp() {
	help := `dropdown - searchable select widget for the terminal

Usage:
  dropdown                    Open with built-in demo options
  dropdown <dataset.yaml>     Load options from a YAML file
  dropdown --db <path>        Page options out of a SQLite database
  dropdown --url <endpoint>   Search options against an HTTP endpoint
  dropdown --multi            Enable multi-select
  dropdown --fuzzy            Fuzzy local search instead of substring
  dropdown help               Show this help

Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom

  Actions:
    enter       Open popup / select option
    space       Toggle option (multi-select)
    a/A         Check/uncheck all (multi-select)
    z           Fold/unfold group
    /           Search
    L           Load next page (remote sources)
    y           Copy selected values to clipboard

  Other:
    esc         Close popup
    q           Quit

Selected values are printed to stdout on exit.
`
	fmt.Print(help)
}
