package docs

import (
	"github.com/platinummonkey/uidocs/pkg/config"
	"github.com/platinummonkey/uidocs/pkg/ngdoc"
)

// Setup is the navigation data the site shell loads from js/docs-setup.json
type Setup struct {
	Title     string         `json:"title"`
	HTML5Mode bool           `json:"html5Mode"`
	StartPage string         `json:"startPage"`
	Sections  []SetupSection `json:"sections"`
	Pages     []ngdoc.Page   `json:"pages"`
}

// SetupSection describes one navigation section
type SetupSection struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	API   bool   `json:"api"`
}

// NewSetup builds the setup data for pages. The start page is the first
// configured section.
func NewSetup(cfg *config.Config, pages []ngdoc.Page) *Setup {
	s := &Setup{
		Title:     cfg.Title,
		HTML5Mode: cfg.HTML5Mode,
		Sections:  make([]SetupSection, 0, len(cfg.Sections)),
		Pages:     pages,
	}
	if s.Pages == nil {
		s.Pages = []ngdoc.Page{}
	}
	for _, sec := range cfg.Sections {
		s.Sections = append(s.Sections, SetupSection{
			Name:  sec.Name,
			Title: sectionTitle(sec),
			API:   sec.API,
		})
	}
	if len(cfg.Sections) > 0 {
		s.StartPage = "/" + cfg.Sections[0].Name
	}
	return s
}

func sectionTitle(s config.Section) string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}
