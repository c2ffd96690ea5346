package section

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/anyshake/prisma/internal/endpoint"
	"github.com/anyshake/prisma/internal/field"
	"github.com/anyshake/prisma/internal/notify"
)

// DefaultNTPPort is used for new server entries.
const DefaultNTPPort = "123"

// NTPClientDraft holds the NTP fallback time source settings.
type NTPClientDraft struct {
	Pool    []string `json:"pool" yaml:"pool" toml:"pool"`
	Timeout float64  `json:"timeout" yaml:"timeout" toml:"timeout"`
	Retry   float64  `json:"retry" yaml:"retry" toml:"retry"`
}

// Preset is a named group of NTP servers.
type Preset struct {
	Name        string
	Description string
	Servers     []endpoint.Server
}

func servers(port string, hosts ...string) []endpoint.Server {
	out := make([]endpoint.Server, len(hosts))
	for i, h := range hosts {
		out[i] = endpoint.Server{Address: h, Port: port}
	}
	return out
}

// Presets lists the server groups offered by the NTP section.
var Presets = []Preset{
	{Name: "pool", Description: "NTP Pool Project", Servers: servers(DefaultNTPPort, "0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org", "3.pool.ntp.org")},
	{Name: "nict", Description: "NICT, Japan", Servers: servers(DefaultNTPPort, "ntp-a2.nict.go.jp", "ntp-b2.nict.go.jp")},
	{Name: "google", Description: "Google Public NTP", Servers: servers(DefaultNTPPort, "time1.google.com", "time2.google.com", "time3.google.com", "time4.google.com")},
	{Name: "cloudflare", Description: "Cloudflare Time Services", Servers: servers(DefaultNTPPort, "time.cloudflare.com")},
	{Name: "apple", Description: "Apple", Servers: servers(DefaultNTPPort, "time.apple.com")},
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// ListEditor is implemented by sections that keep a list of sub-entries.
type ListEditor interface {
	Entries() []endpoint.Server
	AddEntry() bool
	RemoveEntry(i int) bool
	ApplyPreset(name string) bool
}

// NTPClient controls the ntpclient section. The pool is derived from the
// server list.
type NTPClient struct {
	controller[NTPClientDraft]
	confirmer notify.Confirmer
	editors   map[string]editor

	servers []endpoint.Server
	// custom is set once the user changed the list by hand. Seeded and
	// preset lists are replaced without asking.
	custom bool
}

// NewNTPClient creates an inactive NTP client controller.
func NewNTPClient(opts Options) *NTPClient {
	opts = opts.withDefaults()
	n := &NTPClient{confirmer: opts.Confirmer}
	n.controller = newController[NTPClientDraft](KeyNTPClient, opts, n.derive, cloneNTPClient)
	n.editors = map[string]editor{
		"timeout": n.number("Connection timeout", func(d *NTPClientDraft, v float64) { d.Timeout = v }),
		"retry":   n.number("Retry", func(d *NTPClientDraft, v float64) { d.Retry = v }),
	}
	return n
}

func cloneNTPClient(d NTPClientDraft) NTPClientDraft {
	d.Pool = slices.Clone(d.Pool)
	return d
}

func (n *NTPClient) derive(d *NTPClientDraft) {
	d.Pool = endpoint.Pool(n.servers)
}

func (n *NTPClient) number(label string, set func(*NTPClientDraft, float64)) editor {
	return func(raw string) bool {
		v, ok := field.Number(n.notifier, label, raw, field.AtLeast(0))
		if !ok {
			return false
		}
		return n.commit(func(d *NTPClientDraft) { set(d, v) })
	}
}

func (n *NTPClient) Activate() {
	if n.state != StateUninitialized {
		return
	}
	n.servers = servers(DefaultNTPPort, "pool.ntp.org")
	n.seed(NTPClientDraft{Timeout: 5, Retry: 5})
}

// Entries returns a copy of the server list.
func (n *NTPClient) Entries() []endpoint.Server {
	return slices.Clone(n.servers)
}

// AddEntry appends a blank server entry.
func (n *NTPClient) AddEntry() bool {
	if n.state == StateUninitialized {
		return false
	}
	return n.commit(func(*NTPClientDraft) {
		n.servers = append(n.servers, endpoint.Server{Port: DefaultNTPPort})
		n.custom = true
	})
}

// RemoveEntry deletes entry i unless that would leave no usable server.
func (n *NTPClient) RemoveEntry(i int) bool {
	if n.state == StateUninitialized {
		return false
	}
	if i < 0 || i >= len(n.servers) {
		return n.reject(fmt.Sprintf("NTP server %d does not exist", i+1))
	}
	remaining := slices.Delete(slices.Clone(n.servers), i, i+1)
	if usable(remaining) == 0 {
		return n.reject("At least one NTP server is required")
	}
	return n.commit(func(*NTPClientDraft) {
		n.servers = remaining
		n.custom = true
	})
}

// ApplyPreset replaces the server list with a preset group. Servers typed in
// by the user are only discarded after confirmation; a declined confirmation
// is reported and returns false. An interactive confirmer that answers later
// leaves the result true until it resolves.
func (n *NTPClient) ApplyPreset(name string) bool {
	if n.state == StateUninitialized {
		return false
	}
	preset, ok := LookupPreset(name)
	if !ok {
		return n.reject(fmt.Sprintf("Unknown NTP preset %q", name))
	}

	replace := func() {
		n.commit(func(*NTPClientDraft) {
			n.servers = slices.Clone(preset.Servers)
			n.custom = false
		})
	}
	if n.confirmer == nil || !n.custom || usable(n.servers) == 0 || slices.Equal(n.servers, preset.Servers) {
		replace()
		return true
	}

	applied := true
	n.confirmer.Confirm(
		fmt.Sprintf("Replace %d configured NTP servers with the %s preset?", usable(n.servers), preset.Description),
		notify.ConfirmOptions{
			Title:          "Apply NTP preset",
			CancelBtnText:  "Keep servers",
			ConfirmBtnText: "Replace",
			OnConfirmed:    replace,
			OnCancelled: func() {
				applied = false
				n.notifier.Notify(fmt.Sprintf("NTP preset %s not applied, configured servers kept", preset.Name), true)
			},
		},
	)
	return applied
}

func usable(list []endpoint.Server) int {
	count := 0
	for _, s := range list {
		if !s.Blank() {
			count++
		}
	}
	return count
}

// parseServerField splits "servers.<i>.<address|port>".
func parseServerField(name string) (int, string, bool) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 || parts[0] != "servers" {
		return 0, "", false
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 {
		return 0, "", false
	}
	if parts[2] != "address" && parts[2] != "port" {
		return 0, "", false
	}
	return i, parts[2], true
}

func (n *NTPClient) editServer(i int, attr, raw string) bool {
	if i >= len(n.servers) {
		return n.reject(fmt.Sprintf("NTP server %d does not exist", i+1))
	}
	switch attr {
	case "address":
		address := strings.TrimSpace(raw)
		if address == "" {
			others := slices.Delete(slices.Clone(n.servers), i, i+1)
			if usable(others) == 0 {
				return n.reject("At least one NTP server is required")
			}
		}
		return n.commit(func(*NTPClientDraft) {
			n.servers[i].Address = address
			n.custom = true
		})
	default:
		port, ok := field.Port(n.notifier, raw)
		if !ok {
			return false
		}
		return n.commit(func(*NTPClientDraft) {
			n.servers[i].Port = port
			n.custom = true
		})
	}
}

func (n *NTPClient) Fields() []Field {
	fields := make([]Field, 0, 2*len(n.servers)+2)
	for i := range n.servers {
		fields = append(fields,
			Field{Name: fmt.Sprintf("servers.%d.address", i), Label: fmt.Sprintf("Server %d address", i+1), Kind: KindString},
			Field{Name: fmt.Sprintf("servers.%d.port", i), Label: fmt.Sprintf("Server %d port", i+1), Kind: KindPort},
		)
	}
	return append(fields,
		Field{Name: "timeout", Label: "Connection timeout (s)", Kind: KindNumber},
		Field{Name: "retry", Label: "Retry", Kind: KindNumber},
	)
}

func (n *NTPClient) Value(name string) (string, bool) {
	switch name {
	case "timeout":
		return formatNumber(n.draft.Timeout), true
	case "retry":
		return formatNumber(n.draft.Retry), true
	}
	i, attr, ok := parseServerField(name)
	if !ok || i >= len(n.servers) {
		return "", false
	}
	if attr == "address" {
		return n.servers[i].Address, true
	}
	return n.servers[i].Port, true
}

func (n *NTPClient) Edit(name, raw string) (bool, error) {
	if i, attr, ok := parseServerField(name); ok && n.state != StateUninitialized {
		return n.editServer(i, attr, raw), nil
	}
	return n.edit(n.editors, name, raw)
}
