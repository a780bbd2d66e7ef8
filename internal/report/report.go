// Package report writes a dashboard view to a directory as chart images and
// a Markdown narrative.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/chrissnell/bikeshare/internal/chart"
	"github.com/chrissnell/bikeshare/internal/dashboard"
	"github.com/chrissnell/bikeshare/internal/log"
)

// MarkdownFile is the name of the narrative file inside the output directory.
const MarkdownFile = "report.md"

var markdown = template.Must(template.New(MarkdownFile).Parse(`# {{.View.Title}}

{{.View.Intro}}

{{with .View.Selection}}Selection: {{.Start}} to {{.End}}, {{.SeasonLabel}}, {{.WeatherLabel}}.{{end}}

{{.View.Summary}}
{{range .Panels}}
## {{.Heading}}

![{{.Chart.Title}}]({{.File}})
{{if .Message}}
> {{.Message}}
{{end}}
**Insight:** {{.Insight}}
{{if .Detail}}
{{.Detail}}
{{end}}{{if .Question}}
> {{.Question}}
>
> {{.Conclusion}}
{{end}}{{end}}
---
{{.View.Footer}}
`))

type panelFile struct {
	dashboard.Panel
	File string
}

// Write renders every panel of v into dir and writes MarkdownFile next to
// the images. It returns the paths it wrote.
func Write(dir string, v *dashboard.View, r *chart.Renderer, format chart.Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	panels := make([]panelFile, 0, len(v.Panels))
	for _, p := range v.Panels {
		name := fmt.Sprintf("%s.%s", p.ID, format)
		path := filepath.Join(dir, name)
		if err := renderFile(path, r, p.Chart, format); err != nil {
			return written, fmt.Errorf("panel %s: %w", p.ID, err)
		}
		log.Debugf("wrote %s", path)
		written = append(written, path)
		panels = append(panels, panelFile{Panel: p, File: name})
	}

	path := filepath.Join(dir, MarkdownFile)
	f, err := os.Create(path)
	if err != nil {
		return written, err
	}
	defer f.Close()

	data := struct {
		View   *dashboard.View
		Panels []panelFile
	}{v, panels}
	if err := markdown.Execute(f, data); err != nil {
		return written, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return written, err
	}
	return append(written, path), nil
}

func renderFile(path string, r *chart.Renderer, req chart.Request, format chart.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f, req, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
