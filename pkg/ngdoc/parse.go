package ngdoc

import (
	"path/filepath"
	"regexp"
	"strings"
)

// implicitTag receives the text that precedes the first tag of a block
const implicitTag = "description"

var (
	tagLine         = regexp.MustCompile(`^\s*@(\w+)(\s+(.*))?`)
	modulePattern   = regexp.MustCompile(`^\s*(\S+)\s*$`)
	paramPattern    = regexp.MustCompile(`^\{([^}]+)\}\s+(([^\s=]+)|\[(\S+)=([^\]]+)\])\s+(.*)`)
	returnsPattern  = regexp.MustCompile(`^\{([^}]+)\}\s+(.*)`)
	requireLinkOnly = regexp.MustCompile(`^((\{@link.+\})|(\[.+\](\{@link).+\}))$`)
	requirePattern  = regexp.MustCompile(`^(\S*)\s*([\s\S]*)`)
	propertyPattern = regexp.MustCompile(`^\{(\S+)\}\s+(\S+)(\s+(.*))?`)
	eventPattern    = regexp.MustCompile(`^(\S*)\s+on\s+([\s\S]*)`)
	ngdocFile       = regexp.MustCompile(`\.ngdoc$`)
)

// tagHandler parses the body of one or more tags
type tagHandler struct {
	tags   []string
	handle func(d *Doc, text string) error
}

// tagHandlers are consulted in order; tags without a handler are stored by assignTag
var tagHandlers = []tagHandler{
	{tags: []string{"module"}, handle: (*Doc).parseModule},
	{tags: []string{"param"}, handle: (*Doc).parseParam},
	{tags: []string{"returns", "return"}, handle: (*Doc).parseReturns},
	{tags: []string{"requires"}, handle: (*Doc).parseRequires},
	{tags: []string{"property"}, handle: (*Doc).parseProperty},
	{tags: []string{"eventType"}, handle: (*Doc).parseEventType},
	{tags: []string{"constructor"}, handle: func(d *Doc, _ string) error {
		d.Constructor = true
		return nil
	}},
}

func handlerFor(tag string) (tagHandler, bool) {
	for _, h := range tagHandlers {
		for _, t := range h.tags {
			if t == tag {
				return h, true
			}
		}
	}
	return tagHandler{}, false
}

// Parse reads the doc text, fills the doc fields and finalizes derived fields.
// It must be called exactly once.
func (d *Doc) Parse() error {
	if d.Tags == nil {
		d.Tags = make(map[string]string)
	}

	tag := implicitTag
	var body []string

	for _, line := range newLine.Split(d.Text, -1) {
		m := tagLine.FindStringSubmatch(line)
		if m == nil {
			body = append(body, line)
			continue
		}
		if err := d.flush(tag, body); err != nil {
			return err
		}
		tag = m[1]
		body = nil
		if m[3] != "" {
			body = append(body, strings.TrimRight(m[3], " \t"))
		}
	}
	if err := d.flush(tag, body); err != nil {
		return err
	}

	return d.finalize()
}

// flush dispatches one collected tag section
func (d *Doc) flush(tag string, body []string) error {
	text := Trim(strings.Join(body, "\n"))
	if tag == implicitTag && text == "" {
		return nil
	}
	if h, ok := handlerFor(tag); ok {
		return h.handle(d, text)
	}
	d.assignTag(tag, text)
	return nil
}

// assignTag stores a tag that has no grammar of its own
func (d *Doc) assignTag(tag, text string) {
	switch tag {
	case "ngdoc":
		d.Kind = text
	case "name":
		d.Name = text
	case "id":
		d.ID = text
	case "section":
		d.Section = text
	case "description":
		d.Description = text
	case "example":
		d.Example = text
	case "this":
		d.This = text
	case "methodOf":
		d.MethodOf = text
	case "propertyOf":
		d.PropertyOf = text
	case "eventOf":
		d.EventOf = text
	case "restrict":
		d.Restrict = text
	case "element":
		d.Element = text
	case "usage":
		d.Usage = text
	case "animations":
		d.Animations = text
	default:
		d.Tags[tag] = text
	}
}

func (d *Doc) parseError(err error, text string) error {
	return &ParseError{Err: err, Text: text, File: d.File, Line: d.Line}
}

func (d *Doc) parseModule(text string) error {
	if m := modulePattern.FindStringSubmatch(text); m != nil {
		d.ModuleName = m[1]
	}
	return nil
}

func (d *Doc) parseParam(text string) error {
	m := paramPattern.FindStringSubmatch(text)
	if m == nil {
		return d.parseError(ErrInvalidParam, text)
	}

	description, err := d.Markdown(m[6] + text[len(m[0]):])
	if err != nil {
		return err
	}

	typ := m[1]
	optional := strings.HasSuffix(typ, "=")
	if optional {
		typ = strings.TrimSuffix(typ, "=")
	}
	name := m[3]
	if m[4] != "" {
		name = m[4]
	}

	param := &Param{
		Name:        name,
		Type:        typ,
		Optional:    optional,
		Default:     m[5],
		Description: description,
	}

	// A dotted name documents a property of an object parameter declared earlier.
	dot := strings.Index(param.Name, ".")
	if dot <= 0 {
		d.Params = append(d.Params, param)
		return nil
	}

	parentName := param.Name[:dot]
	param.Name = param.Name[dot+1:]
	param.IsProperty = true
	for _, p := range d.Params {
		if p.Name == parentName {
			p.Properties = append(p.Properties, param)
			return nil
		}
	}
	d.OrphanParams = append(d.OrphanParams, parentName+"."+param.Name)
	return nil
}

func (d *Doc) parseReturns(text string) error {
	m := returnsPattern.FindStringSubmatch(text)
	if m == nil {
		return d.parseError(ErrInvalidReturns, text)
	}
	description, err := d.Markdown(m[2] + text[len(m[0]):])
	if err != nil {
		return err
	}
	d.Returns = &Returns{Type: m[1], Description: description}
	return nil
}

func (d *Doc) parseRequires(text string) error {
	if requireLinkOnly.MatchString(text) {
		d.Requires = append(d.Requires, &Require{Name: text})
		return nil
	}
	m := requirePattern.FindStringSubmatch(text)
	description, err := d.Markdown(m[2])
	if err != nil {
		return err
	}
	d.Requires = append(d.Requires, &Require{Name: m[1], Text: description})
	return nil
}

func (d *Doc) parseProperty(text string) error {
	m := propertyPattern.FindStringSubmatch(text)
	if m == nil {
		return d.parseError(ErrInvalidProperty, text)
	}
	description, err := d.Markdown(m[4] + text[len(m[0]):])
	if err != nil {
		return err
	}
	d.Properties = append(d.Properties, &Doc{
		Name:        m[2],
		ShortName:   m[2],
		Type:        m[1],
		Section:     d.Section,
		File:        d.File,
		Line:        d.Line,
		CodeLine:    d.CodeLine,
		Description: description,
		Tags:        make(map[string]string),
		options:     d.options,
	})
	return nil
}

func (d *Doc) parseEventType(text string) error {
	m := eventPattern.FindStringSubmatch(text)
	if m == nil {
		return d.parseError(ErrInvalidEventType, text)
	}
	d.Type = m[1]
	d.Target = m[2]
	return nil
}

// finalize derives the short name, id and title and renders the text fields
func (d *Doc) finalize() error {
	if d.Name == "" {
		return d.parseError(ErrMissingName, d.Text)
	}

	d.ShortName = shortName(d.Name)
	d.ID = d.deriveID()
	d.title = resolveTitle(d)

	var err error
	if d.Description, err = d.Markdown(d.Description); err != nil {
		return err
	}
	if d.Example, err = d.Markdown(d.Example); err != nil {
		return err
	}
	if d.This, err = d.Markdown(d.This); err != nil {
		return err
	}
	return nil
}

// shortName returns the last segment of name after '#', else ':', else '.'
func shortName(name string) string {
	for _, sep := range []string{"#", ":", "."} {
		parts := strings.Split(name, sep)
		if len(parts) > 1 || sep == "." {
			return lastNonEmpty(parts)
		}
	}
	return strings.TrimSpace(name)
}

func lastNonEmpty(parts []string) string {
	for i := len(parts) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(parts[i]); s != "" {
			return s
		}
	}
	return ""
}

// deriveID picks the explicit @id, then the full name of an error doc, then
// the base name of an .ngdoc file, then the name
func (d *Doc) deriveID() string {
	if d.ID != "" {
		return d.ID
	}
	if d.Kind == KindError {
		return d.Name
	}
	if ngdocFile.MatchString(d.File) && strings.ContainsAny(d.File, `/\`) {
		base := d.File[strings.LastIndexAny(d.File, `/\`)+1:]
		if id := strings.TrimSuffix(base, filepath.Ext(base)); id != "" {
			return id
		}
	}
	return d.Name
}
