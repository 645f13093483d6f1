package commands

import (
	"ao3search/internal/scrapers/ao3"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderWorks(out io.Writer, works []ao3.Work) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Id", "Title", "Authors", "Fandoms", "Rating", "Words", "Updated", "Complete"})
	for _, work := range works {
		rating := ""
		if work.Rating != nil {
			rating = work.Rating.Title()
		}
		complete := "no"
		if work.IsComplete {
			complete = "yes"
		}
		t.AppendRow(table.Row{
			work.Id,
			work.Title,
			strings.Join(work.Authors, ", "),
			strings.Join(work.Fandoms, ", "),
			rating,
			strconv.FormatInt(work.WordCount, 10),
			work.Date.Format("2006-01-02"),
			complete,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Total", len(works)})
	t.Render()
}
