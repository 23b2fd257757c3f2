package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/aouyang1/go-multitool"
	"github.com/aouyang1/go-multitool/electric"
	"github.com/go-echarts/go-echarts/v2/components"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"fixed": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"title": func(m multitool.Mode) string { return m.Title() },
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Mode   multitool.Mode
	Modes  []multitool.Mode
	Query  url.Values
	Error  string
	Result any

	Gauges   []electric.WireGauge
	Subjects []string
}

// RenderIndex writes the landing page linking to every tool
func RenderIndex(w io.Writer) error {
	return templates.ExecuteTemplate(w, "index.html", pageData{Modes: multitool.Modes()})
}

// Render evaluates the tool for the query and writes a standalone html page with its inputs,
// results and charts. Invalid inputs are rendered as a message on the page and returned.
func Render(w io.Writer, tk *multitool.Toolkit, mode multitool.Mode, q url.Values) error {
	_, err := render(w, tk, mode, q)
	return err
}

// render is Render that also returns the evaluated tool result
func render(w io.Writer, tk *multitool.Toolkit, mode multitool.Mode, q url.Values) (any, error) {
	res, evalErr := Evaluate(tk, mode, q)

	data := pageData{
		Mode:     mode,
		Modes:    multitool.Modes(),
		Query:    q,
		Gauges:   electric.WireGauges(),
		Subjects: tk.Subjects(),
	}
	if evalErr != nil {
		data.Error = evalErr.Error()
	} else {
		data.Result = res
	}

	var fragment bytes.Buffer
	if err := templates.ExecuteTemplate(&fragment, string(mode)+".html", data); err != nil {
		return nil, fmt.Errorf("unable to render %s template, %w", mode, err)
	}

	page := components.NewPage()
	page.PageTitle = mode.Title()
	if evalErr == nil {
		switch r := res.(type) {
		case *multitool.ElectricityResult:
			page.AddCharts(ElectricityChart(r))
		case *multitool.MarksResult:
			page.AddCharts(MarksChart(r))
		case *multitool.RentResult:
			page.AddCharts(RentChart(r))
		}
	}

	var out bytes.Buffer
	if err := page.Render(&out); err != nil {
		return nil, fmt.Errorf("unable to render %s charts, %w", mode, err)
	}
	if _, err := w.Write(injectBody(out.Bytes(), fragment.Bytes())); err != nil {
		return nil, err
	}
	return res, evalErr
}

// injectBody places the fragment right after the opening body tag of the rendered chart page
func injectBody(page, fragment []byte) []byte {
	start := bytes.Index(page, []byte("<body"))
	if start < 0 {
		return append(append([]byte(nil), fragment...), page...)
	}
	end := bytes.IndexByte(page[start:], '>')
	if end < 0 {
		return append(append([]byte(nil), fragment...), page...)
	}
	pos := start + end + 1

	out := make([]byte, 0, len(page)+len(fragment))
	out = append(out, page[:pos]...)
	out = append(out, fragment...)
	out = append(out, page[pos:]...)
	return out
}
