package docs

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/platinummonkey/uidocs/pkg/config"
	"github.com/platinummonkey/uidocs/pkg/ngdoc"
	"github.com/platinummonkey/uidocs/pkg/storage"
)

// IndexExporter renders the static index page of a generated site
type IndexExporter struct {
	template *template.Template
}

// IndexSection is one section of the index with its pages in sidebar order
type IndexSection struct {
	Name  string
	Title string
	Pages []ngdoc.Page
}

// NewIndexExporter creates a new index exporter
func NewIndexExporter() *IndexExporter {
	tmpl := template.Must(template.New("index").Funcs(template.FuncMap{
		"partial":    storage.PagePath,
		"anchor":     toAnchor,
		"hasContent": hasContent,
	}).Parse(htmlTemplate))

	return &IndexExporter{
		template: tmpl,
	}
}

// Export renders the index for pages, grouped by the configured sections.
// Sections without pages are left out.
func (e *IndexExporter) Export(title string, sections []config.Section, pages []ngdoc.Page) (string, error) {
	data := struct {
		Title    string
		Sections []IndexSection
	}{
		Title:    title,
		Sections: groupPages(sections, pages),
	}

	var buf bytes.Buffer
	err := e.template.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func groupPages(sections []config.Section, pages []ngdoc.Page) []IndexSection {
	bySection := make(map[string][]ngdoc.Page)
	for _, p := range pages {
		bySection[p.Section] = append(bySection[p.Section], p)
	}

	var out []IndexSection
	for _, s := range sections {
		if len(bySection[s.Name]) == 0 {
			continue
		}
		out = append(out, IndexSection{
			Name:  s.Name,
			Title: sectionTitle(s),
			Pages: bySection[s.Name],
		})
	}
	return out
}

// toAnchor converts a name to an HTML anchor
func toAnchor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// hasContent checks if a string has content
func hasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f5f5f5;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }
        header {
            background: #2c3e50;
            color: white;
            padding: 30px 0;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        header h1 {
            margin-bottom: 10px;
        }
        nav {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        nav h2 {
            margin-bottom: 15px;
            color: #2c3e50;
        }
        nav ul {
            list-style: none;
        }
        nav ul li {
            margin: 8px 0;
        }
        nav a {
            color: #3498db;
            text-decoration: none;
            transition: color 0.2s;
        }
        nav a:hover {
            color: #2980b9;
            text-decoration: underline;
        }
        .content {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h2 {
            color: #2c3e50;
            margin: 30px 0 20px 0;
            padding-bottom: 10px;
            border-bottom: 2px solid #3498db;
        }
        h3 {
            color: #34495e;
            margin: 25px 0 15px 0;
        }
        h4 {
            color: #7f8c8d;
            margin: 20px 0 10px 0;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 20px 0;
        }
        th {
            background: #ecf0f1;
            padding: 12px;
            text-align: left;
            font-weight: 600;
            border-bottom: 2px solid #bdc3c7;
        }
        td {
            padding: 12px;
            border-bottom: 1px solid #ecf0f1;
        }
        tr:hover {
            background: #f8f9fa;
        }
        code {
            background: #f8f9fa;
            padding: 2px 6px;
            border-radius: 3px;
            font-family: "Monaco", "Menlo", "Ubuntu Mono", monospace;
            font-size: 0.9em;
            color: #e74c3c;
        }
        pre {
            background: #2c3e50;
            color: #ecf0f1;
            padding: 15px;
            border-radius: 5px;
            overflow-x: auto;
            margin: 15px 0;
        }
        pre code {
            background: none;
            color: #ecf0f1;
            padding: 0;
        }
        .deprecated {
            color: #e74c3c;
            font-weight: 600;
        }
        .search-box {
            width: 100%;
            padding: 12px;
            border: 2px solid #ecf0f1;
            border-radius: 5px;
            font-size: 1em;
            margin-bottom: 20px;
        }
        .search-box:focus {
            outline: none;
            border-color: #3498db;
        }
    </style>
</head>
<body>
    <header>
        <div class="container">
            <h1>{{ .Title }}</h1>
        </div>
    </header>

    <div class="container">
        <nav>
            <h2>Sections</h2>
            <input type="text" class="search-box" placeholder="Search documentation..." id="search">
            <ul>
                {{ range .Sections }}
                <li><a href="#{{ anchor .Name }}">{{ .Title }}</a></li>
                {{ end }}
            </ul>
        </nav>

        <div class="content">
            {{ range .Sections }}
            <h2 id="{{ anchor .Name }}">{{ .Title }}</h2>
            <table>
                <thead>
                    <tr>
                        <th>Name</th>
                        <th>Type</th>
                        <th>Module</th>
                        <th>Description</th>
                    </tr>
                </thead>
                <tbody>
                    {{ range .Pages }}
                    <tr class="page" data-keywords="{{ .Keywords }}">
                        <td>
                            <a href="{{ partial .Section .ID }}">{{ .ShortName }}</a>
                            {{ if .IsDeprecated }}<span class="deprecated">deprecated</span>{{ end }}
                        </td>
                        <td>{{ if hasContent .Type }}<code>{{ .Type }}</code>{{ end }}</td>
                        <td>{{ .ModuleName }}</td>
                        <td>{{ .ShortDescription }}</td>
                    </tr>
                    {{ end }}
                </tbody>
            </table>
            {{ else }}
            <p>No documentation pages.</p>
            {{ end }}
        </div>
    </div>

    <script>
        document.getElementById('search').addEventListener('input', function(e) {
            const searchTerm = e.target.value.toLowerCase();
            document.querySelectorAll('tr.page').forEach(row => {
                const text = (row.dataset.keywords + ' ' + row.textContent).toLowerCase();
                row.style.display = (searchTerm === '' || text.includes(searchTerm)) ? '' : 'none';
            });
        });
    </script>
</body>
</html>
`
