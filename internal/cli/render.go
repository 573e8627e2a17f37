package cli

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/heartmarshall/pronounce/internal/domain"
	"github.com/heartmarshall/pronounce/internal/service/pronunciation"
)

func renderTable(w io.Writer, results []Result, explain bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Word", "Status", "Source", "File", "Host", "URL", "Attempts"}
	if explain {
		header = append(header, "Tried")
	}
	t.AppendHeader(header)

	for _, r := range results {
		row := table.Row{r.Word, r.Status.String(), "", "", "", statusDetail(r), len(r.Tried)}
		if r.Found() {
			row = table.Row{r.Word, r.Status.String(), r.Source, r.Audio.Filename, r.Audio.HostSource.Name, r.Audio.URL, len(r.Tried)}
		}
		if explain {
			row = append(row, strings.Join(r.Tried, "\n"))
		}
		t.AppendRow(row)
	}

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()

	if explain {
		renderCandidates(w, results)
	}
}

func renderCandidates(w io.Writer, results []Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Word", "Candidate", "Score"})

	rows := 0
	for _, r := range results {
		for _, c := range r.Candidates {
			t.AppendRow(table.Row{r.Word, c.Filename, strconv.Itoa(c.Score)})
			rows++
		}
	}
	if rows == 0 {
		return
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)

	_, _ = io.WriteString(w, "\n")
	t.Render()
}

func statusDetail(r Result) string {
	switch r.Status {
	case domain.StatusNotFound:
		return pronunciation.NotFoundMessage
	case domain.StatusInvalidInput:
		return "empty word"
	default:
		if r.Err != nil {
			return r.Err.Error()
		}
		return ""
	}
}

type jsonCandidate struct {
	File  string `json:"file"`
	Score int    `json:"score"`
}

// jsonResult mirrors the HTTP response body, with the status added.
type jsonResult struct {
	Word       string          `json:"word"`
	Status     string          `json:"status"`
	Tried      []string        `json:"tried"`
	Source     string          `json:"source,omitempty"`
	File       string          `json:"file,omitempty"`
	URL        string          `json:"url,omitempty"`
	FileHost   string          `json:"fileHost,omitempty"`
	Error      string          `json:"error,omitempty"`
	Candidates []jsonCandidate `json:"candidates,omitempty"`
}

func renderJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, r := range results {
		out := jsonResult{
			Word:   r.Word,
			Status: r.Status.String(),
			Tried:  r.Tried,
		}
		if r.Found() {
			out.Source = r.Source
			out.File = r.Audio.Filename
			out.URL = r.Audio.URL
			out.FileHost = r.Audio.HostSource.Name
		} else {
			out.Error = statusDetail(r)
		}
		for _, c := range r.Candidates {
			out.Candidates = append(out.Candidates, jsonCandidate{File: c.Filename, Score: c.Score})
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
