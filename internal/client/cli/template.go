package cli

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"ago":  humanize.Time,
	"bytes": func(n int64) string {
		return humanize.IBytes(uint64(n))
	},
	"stamp": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04")
	},
	"short": func(s string) string {
		if len(s) > 8 {
			return s[:8]
		}
		return s
	},
}

const moodEntryTemplate = `{{short .ID}}  {{stamp .RecordedAt}}  mood {{printf "%2d" .Mood}}/10
{{- if .Offline}}  [offline]{{end}}
{{- if .Note}}  {{.Note}}{{end}}
{{- if .Tags}}  #{{join .Tags " #"}}{{end}}
`

const backupInfoTemplate = `{{.ID}}  {{stamp .Timestamp}} ({{ago .Timestamp}})  {{.Type}}  {{bytes .Size}}
`

const backupConfigTemplate = `Enabled:     {{.Enabled}}
Automatic:   {{.AutoBackup}}
Frequency:   {{.Frequency}}
Max backups: {{.MaxBackups}}
{{- if .LastBackup}}
Last backup: {{stamp .LastBackup}}
{{- end}}
{{- if .NextBackup}}
Next backup: {{stamp .NextBackup}}
{{- end}}
`

var (
	moodEntryTmpl    = template.Must(template.New("mood").Funcs(templateFuncs).Parse(moodEntryTemplate))
	backupInfoTmpl   = template.Must(template.New("backup").Funcs(templateFuncs).Parse(backupInfoTemplate))
	backupConfigTmpl = template.Must(template.New("config").Funcs(templateFuncs).Parse(backupConfigTemplate))
)

func (c *Cli) render(tmpl *template.Template, data any) error {
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	return nil
}
