package pdf

import (
	"html/template"
	"strings"

	"cogniverse/backend/models"
)

// RenderHTML builds the printable HTML document a resume is rendered from.
func RenderHTML(resume *models.Resume) (string, error) {
	var b strings.Builder
	if err := resumeTemplate.Execute(&b, resume); err != nil {
		return "", err
	}
	return b.String(), nil
}

var resumeTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
	"displayDate": func(entry models.ExperienceEntry) string {
		if entry.StartDate == nil {
			return ""
		}
		end := "Present"
		if !entry.Current && entry.EndDate != nil {
			end = entry.EndDate.Format("1/2/2006")
		}
		return entry.StartDate.Format("1/2/2006") + " - " + end
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 18mm; }
  body { font-family: Helvetica, Arial, sans-serif; color: #222; font-size: 11pt; }
  h1 { margin: 0; font-size: 22pt; }
  h2 { font-size: 12pt; text-transform: uppercase; letter-spacing: 1px;
       border-bottom: 1px solid #999; padding-bottom: 2px; margin: 16px 0 8px; }
  .contact { color: #555; margin-bottom: 12px; }
  .entry { margin-bottom: 10px; }
  .entry-head { font-weight: bold; }
  .entry-dates { color: #777; font-weight: normal; }
  ul { margin: 4px 0 0 18px; padding: 0; }
</style>
</head>
<body>
  <h1>{{.PersonalInfo.Name}}</h1>
  <div class="contact">
    {{.PersonalInfo.Email}}{{if .PersonalInfo.Phone}} &bull; {{.PersonalInfo.Phone}}{{end}}{{if .PersonalInfo.Location}} &bull; {{.PersonalInfo.Location}}{{end}}
    {{if .PersonalInfo.Portfolio}}<br>{{.PersonalInfo.Portfolio}}{{end}}{{if .PersonalInfo.LinkedIn}} &bull; {{.PersonalInfo.LinkedIn}}{{end}}
  </div>

  {{if .Summary}}<h2>Summary</h2><p>{{.Summary}}</p>{{end}}

  {{if .Experience}}<h2>Experience</h2>
  {{range .Experience}}
  <div class="entry">
    <div class="entry-head">{{.Position}} at {{.Company}} <span class="entry-dates">{{displayDate .}}</span></div>
    {{if .Description}}<div>{{.Description}}</div>{{end}}
    {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </div>
  {{end}}{{end}}

  {{if .Education}}<h2>Education</h2>
  {{range .Education}}
  <div class="entry">
    <div class="entry-head">{{.Degree}}{{if .Field}} in {{.Field}}{{end}} at {{.Institution}}</div>
    {{if .GPA}}<div>GPA: {{.GPA}}</div>{{end}}
    {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </div>
  {{end}}{{end}}

  {{if or .Skills.Technical .Skills.Soft .Skills.Languages}}<h2>Skills</h2>
  {{if .Skills.Technical}}<div><strong>Technical:</strong> {{join .Skills.Technical}}</div>{{end}}
  {{if .Skills.Soft}}<div><strong>Soft:</strong> {{join .Skills.Soft}}</div>{{end}}
  {{if .Skills.Languages}}<div><strong>Languages:</strong> {{join .Skills.Languages}}</div>{{end}}
  {{end}}

  {{if .Projects}}<h2>Projects</h2>
  {{range .Projects}}
  <div class="entry">
    <div class="entry-head">{{.Name}}</div>
    {{if .Description}}<div>{{.Description}}</div>{{end}}
    {{if .Technologies}}<div><em>{{join .Technologies}}</em></div>{{end}}
  </div>
  {{end}}{{end}}

  {{if .Certifications}}<h2>Certifications</h2>
  <ul>{{range .Certifications}}<li>{{.Name}}{{if .Issuer}} ({{.Issuer}}){{end}}</li>{{end}}</ul>
  {{end}}
</body>
</html>`))
