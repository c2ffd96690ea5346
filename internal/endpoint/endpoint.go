// Package endpoint composes connection strings from discrete host, port,
// path and query fields. All functions are pure and deterministic.
package endpoint

import (
	"net"
	"net/url"
	"strings"
)

// Scheme names understood by the composer.
const (
	EngineSQLite    = "sqlite"
	TransportSerial = "serial"
	TransportTCP    = "tcp"
	SchemeNTP       = "ntp"
)

// authority joins host and port. An empty host yields an empty authority,
// since a port cannot be attached to a missing host.
func authority(host, port string) string {
	if host == "" {
		return ""
	}
	if port == "" {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}

// compose renders u, keeping the "//" separator even when the authority and
// path are empty ("sqlite://").
func compose(u url.URL) string {
	if u.Host == "" && u.Path == "" {
		s := u.Scheme + "://"
		if u.RawQuery != "" {
			s += "?" + u.RawQuery
		}
		return s
	}
	return u.String()
}

// Database composes a database endpoint. SQLite endpoints carry no authority.
func Database(engine, host, port string) string {
	if engine == EngineSQLite {
		return compose(url.URL{Scheme: engine})
	}
	return compose(url.URL{Scheme: engine, Host: authority(host, port)})
}

// HardwareParams holds the constituent fields of the hardware endpoint.
type HardwareParams struct {
	Transport  string
	TCPHost    string
	TCPPort    string
	SerialPort string
	Baudrate   string
}

// Hardware composes the hardware transport endpoint.
//
// A serial identifier starting with "/" is a device path and goes in the
// path position; anything else is a named port (COM3) placed, uppercased, in
// the host position.
func Hardware(p HardwareParams) string {
	u := url.URL{Scheme: p.Transport}
	switch p.Transport {
	case TransportTCP:
		u.Host = authority(p.TCPHost, p.TCPPort)
	case TransportSerial:
		if strings.HasPrefix(p.SerialPort, "/") {
			u.Path = p.SerialPort
		} else {
			u.Host = strings.ToUpper(p.SerialPort)
		}
		u.RawQuery = url.Values{"baudrate": []string{p.Baudrate}}.Encode()
	}
	return compose(u)
}

// NTP composes a single NTP server endpoint.
func NTP(host, port string) string {
	return compose(url.URL{Scheme: SchemeNTP, Host: authority(host, port)})
}

// Server is one NTP server entry.
type Server struct {
	Address string `json:"address"`
	Port    string `json:"port"`
}

// Blank reports whether the entry has no address.
func (s Server) Blank() bool {
	return strings.TrimSpace(s.Address) == ""
}

// Pool composes one endpoint per server, in order, skipping blank entries and
// repeated endpoints.
func Pool(servers []Server) []string {
	pool := make([]string, 0, len(servers))
	seen := make(map[string]bool, len(servers))
	for _, s := range servers {
		if s.Blank() {
			continue
		}
		ep := NTP(strings.TrimSpace(s.Address), s.Port)
		if seen[ep] {
			continue
		}
		seen[ep] = true
		pool = append(pool, ep)
	}
	return pool
}

// Listen composes a scheme-less listen address. An empty port yields the
// bare host.
func Listen(host, port string) string {
	if port == "" {
		return host
	}
	return net.JoinHostPort(host, port)
}
