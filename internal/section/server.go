package section

import (
	"github.com/anyshake/prisma/internal/endpoint"
	"github.com/anyshake/prisma/internal/field"
)

// ServerDraft holds the built-in web server settings.
type ServerDraft struct {
	Listen string `json:"listen" yaml:"listen" toml:"listen"`
	Debug  bool   `json:"debug" yaml:"debug" toml:"debug"`
	CORS   bool   `json:"cors" yaml:"cors" toml:"cors"`
}

// Server controls the server section.
type Server struct {
	controller[ServerDraft]
	editors map[string]editor

	host string
	port string
}

// NewServer creates an inactive server controller.
func NewServer(opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{}
	s.controller = newController[ServerDraft](KeyServer, opts, s.derive, nil)
	s.editors = map[string]editor{
		"host": func(raw string) bool {
			return s.commit(func(*ServerDraft) { s.host = raw })
		},
		"port": func(raw string) bool {
			v, ok := field.Port(s.notifier, raw)
			if !ok {
				return false
			}
			return s.commit(func(*ServerDraft) { s.port = v })
		},
		"debug": s.toggle("Debug mode", func(d *ServerDraft, v bool) { d.Debug = v }),
		"cors":  s.toggle("Allow CORS", func(d *ServerDraft, v bool) { d.CORS = v }),
	}
	return s
}

func (s *Server) toggle(label string, set func(*ServerDraft, bool)) editor {
	return func(raw string) bool {
		v, ok := field.Bool(s.notifier, label, raw)
		if !ok {
			return false
		}
		return s.commit(func(d *ServerDraft) { set(d, v) })
	}
}

func (s *Server) derive(d *ServerDraft) {
	d.Listen = endpoint.Listen(s.host, s.port)
}

func (s *Server) Activate() {
	if s.state != StateUninitialized {
		return
	}
	s.host = "0.0.0.0"
	s.port = "8073"
	s.seed(ServerDraft{Debug: false, CORS: true})
}

func (s *Server) Fields() []Field {
	return []Field{
		{Name: "host", Label: "Listen host", Kind: KindString},
		{Name: "port", Label: "Listen port", Kind: KindPort},
		{Name: "debug", Label: "Debug mode", Kind: KindBool},
		{Name: "cors", Label: "Allow CORS", Kind: KindBool},
	}
}

func (s *Server) Value(name string) (string, bool) {
	switch name {
	case "host":
		return s.host, true
	case "port":
		return s.port, true
	case "debug":
		return formatBool(s.draft.Debug), true
	case "cors":
		return formatBool(s.draft.CORS), true
	}
	return "", false
}

func (s *Server) Edit(name, raw string) (bool, error) {
	return s.edit(s.editors, name, raw)
}
