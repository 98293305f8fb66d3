package global

import (
	"bytes"

	"github.com/markusressel/emcfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// PrintTable renders the given rows to the console, nothing is printed for an empty table
func PrintTable(headers []string, rows [][]string) error {
	if len(rows) <= 0 {
		return nil
	}

	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return err
	}
	ui.Printfln(buf.String())
	return nil
}
