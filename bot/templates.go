package bot

import (
	"bytes"
	"io"
	"strings"
	"sync"
	tmpl "text/template"

	"github.com/pkg/errors"
)

// Reply templates, named after the callback event
const (
	UpdateWelcome    = "conversation_started" // conversation opened; one welcome message allowed
	UpdateSubscribed = "subscribed"           // user subscribed to the bot
	UpdateMessage    = "message"              // user sent a message
)

var (
	templateUser = map[string]any{
		"ID":       "01234567890A=",
		"Name":     "José Antonio",
		"Avatar":   "https://avatar.example.com",
		"Country":  "ES",
		"Language": "es",
	}
	buffers = sync.Pool{
		New: func() any {
			return bytes.NewBuffer(nil)
		},
	}
	// TemplateTests maps[name]data of well-known template(s) for validity tests purpose
	TemplateTests = map[string]any{
		UpdateWelcome: map[string]any{
			"Type":       "open",
			"Context":    "deep-link",
			"Subscribed": false,
			"User":       templateUser,
		},
		UpdateSubscribed: map[string]any{
			"User": templateUser,
		},
		UpdateMessage: map[string]any{
			"Sender": templateUser,
			"Message": map[string]any{
				"Text": "Hola!",
			},
		},
	}
)

type Template tmpl.Template

func NewTemplate(name string) *Template {
	root := tmpl.New(name)
	root.Delims("$(", ")")
	return (*Template)(root)
}

func (m *Template) Root() *tmpl.Template {
	return (*tmpl.Template)(m)
}

// Test well-known reply templates against sample callbacks
func (m *Template) Test(ctx map[string]any) error {
	if ctx == nil {
		ctx = TemplateTests
	}
	root := m.Root()
	// for validation purpose
	root.Option("missingkey=error")
	for name, data := range ctx {
		node := root.Lookup(name)
		if node == nil {
			continue // not defined
		}
		// testTemplate
		err := node.Execute(io.Discard, data)
		if err != nil {
			return errors.Wrap(err, "updates."+name)
		}
	}
	return nil // ok
}

// Parse reply templates map[event]text.
// Empty text leaves the event without reply.
func (m *Template) Parse(replies map[string]string) error {
	root := m.Root()
	for name, text := range replies {
		text = strings.TrimSpace(text)
		// addTemplate
		node := root.Lookup(name)
		if node == nil {
			if text == "" {
				continue
			}
			node = root.New(name)
		}
		_, err := node.Parse(text)
		if err != nil {
			return errors.WithMessage(err, "updates."+name)
		}
	}
	return nil
}

// Has reports whether the reply template name is defined.
func (m *Template) Has(name string) bool {
	return m.Root().Lookup(name) != nil
}

func (m *Template) MessageText(name string, ctx any) (text string, err error) {
	root := m.Root()
	node := root.Lookup(name)
	if node == nil {
		return // "", nil
	}
	buf := buffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		buffers.Put(buf)
	}()
	err = node.Execute(buf, ctx)
	if err == nil {
		text = buf.String()
	}
	return // text|"", err|nil
}
