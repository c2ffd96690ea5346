package section

import (
	"strings"

	"github.com/anyshake/prisma/internal/endpoint"
	"github.com/anyshake/prisma/internal/field"
)

// CustomModel is the model choice that enables a free-form model name.
const CustomModel = "custom"

var (
	hardwareProtocols  = []string{"v1", "v2", "v3"}
	hardwareModels     = []string{"E-C111G", "E-C121G", CustomModel}
	hardwareTransports = []string{endpoint.TransportSerial, endpoint.TransportTCP}
)

// HardwareDraft describes how the Explorer hardware is reached.
type HardwareDraft struct {
	Endpoint string  `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	Protocol string  `json:"protocol" yaml:"protocol" toml:"protocol"`
	Model    string  `json:"model" yaml:"model" toml:"model"`
	Timeout  float64 `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// Hardware controls the hardware section. The endpoint is derived from the
// transport fields; the model is derived from the custom model name when the
// custom choice is selected.
type Hardware struct {
	controller[HardwareDraft]
	editors map[string]editor

	defaultSerialPort string

	transport   string
	tcpHost     string
	tcpPort     string
	serialPort  string
	baudrate    string
	modelChoice string
	customModel string
}

// NewHardware creates an inactive hardware controller.
func NewHardware(opts Options) *Hardware {
	opts = opts.withDefaults()
	h := &Hardware{defaultSerialPort: opts.SerialPort}
	h.controller = newController[HardwareDraft](KeyHardware, opts, h.derive, nil)
	h.editors = map[string]editor{
		"protocol":     h.choice("Data protocol", hardwareProtocols, func(v string) { h.draft.Protocol = v }),
		"model":        h.choice("Product model", hardwareModels, func(v string) { h.modelChoice = v }),
		"transport":    h.choice("Transport type", hardwareTransports, func(v string) { h.transport = v }),
		"custom_model": h.editCustomModel,
		"serial_port":  h.text("Serial port", func(v string) { h.serialPort = v }),
		"tcp_host":     h.text("TCP hostname", func(v string) { h.tcpHost = v }),
		"tcp_port":     h.editTCPPort,
		"baudrate":     h.editBaudrate,
		"timeout":      h.editTimeout,
	}
	return h
}

func (h *Hardware) derive(d *HardwareDraft) {
	d.Endpoint = endpoint.Hardware(endpoint.HardwareParams{
		Transport:  h.transport,
		TCPHost:    h.tcpHost,
		TCPPort:    h.tcpPort,
		SerialPort: h.serialPort,
		Baudrate:   h.baudrate,
	})
	if h.modelChoice == CustomModel {
		d.Model = h.customModel
	} else {
		d.Model = h.modelChoice
	}
}

func (h *Hardware) Activate() {
	if h.state != StateUninitialized {
		return
	}
	h.transport = endpoint.TransportSerial
	h.tcpHost = "10.0.0.100"
	h.tcpPort = "12345"
	h.serialPort = h.defaultSerialPort
	h.baudrate = "57600"
	h.modelChoice = "E-C111G"
	h.customModel = "E-C111G"
	h.seed(HardwareDraft{Protocol: "v3", Timeout: 5})
}

func (h *Hardware) choice(label string, options []string, set func(string)) editor {
	return func(raw string) bool {
		v, ok := field.Choice(h.notifier, label, raw, options)
		if !ok {
			return false
		}
		return h.commit(func(*HardwareDraft) { set(v) })
	}
}

func (h *Hardware) text(label string, set func(string)) editor {
	return func(raw string) bool {
		v, ok := field.String(h.notifier, raw, field.NonEmpty(label))
		if !ok {
			return false
		}
		return h.commit(func(*HardwareDraft) { set(v) })
	}
}

func (h *Hardware) editCustomModel(raw string) bool {
	v, ok := field.String(h.notifier, strings.ToUpper(strings.TrimSpace(raw)), field.NonEmpty("Custom model"))
	if !ok {
		return false
	}
	return h.commit(func(*HardwareDraft) { h.customModel = v })
}

func (h *Hardware) editTCPPort(raw string) bool {
	v, ok := field.Port(h.notifier, raw)
	if !ok {
		return false
	}
	return h.commit(func(*HardwareDraft) { h.tcpPort = v })
}

func (h *Hardware) editBaudrate(raw string) bool {
	v, ok := field.Number(h.notifier, "Serial baudrate", raw, field.AtLeast(0))
	if !ok {
		return false
	}
	return h.commit(func(*HardwareDraft) { h.baudrate = formatNumber(v) })
}

func (h *Hardware) editTimeout(raw string) bool {
	v, ok := field.Number(h.notifier, "Connection timeout", raw, field.AtLeast(0))
	if !ok {
		return false
	}
	return h.commit(func(d *HardwareDraft) { d.Timeout = v })
}

func (h *Hardware) Fields() []Field {
	fields := []Field{
		{Name: "protocol", Label: "Data protocol", Kind: KindChoice, Options: hardwareProtocols},
		{Name: "model", Label: "Product model", Kind: KindChoice, Options: hardwareModels},
	}
	if h.modelChoice == CustomModel {
		fields = append(fields, Field{Name: "custom_model", Label: "Custom model", Kind: KindString})
	}
	fields = append(fields, Field{Name: "transport", Label: "Transport type", Kind: KindChoice, Options: hardwareTransports})
	if h.transport == endpoint.TransportTCP {
		fields = append(fields,
			Field{Name: "tcp_host", Label: "TCP hostname", Kind: KindString},
			Field{Name: "tcp_port", Label: "TCP port", Kind: KindPort},
		)
	} else {
		fields = append(fields,
			Field{Name: "serial_port", Label: "Serial port", Kind: KindString, Help: "Device path or port name, e.g. /dev/ttyUSB0 or COM3"},
			Field{Name: "baudrate", Label: "Serial baudrate", Kind: KindNumber},
		)
	}
	return append(fields, Field{Name: "timeout", Label: "Connection timeout (s)", Kind: KindNumber})
}

func (h *Hardware) Value(name string) (string, bool) {
	switch name {
	case "protocol":
		return h.draft.Protocol, true
	case "model":
		return h.modelChoice, true
	case "custom_model":
		return h.customModel, true
	case "transport":
		return h.transport, true
	case "serial_port":
		return h.serialPort, true
	case "tcp_host":
		return h.tcpHost, true
	case "tcp_port":
		return h.tcpPort, true
	case "baudrate":
		return h.baudrate, true
	case "timeout":
		return formatNumber(h.draft.Timeout), true
	}
	return "", false
}

func (h *Hardware) Edit(name, raw string) (bool, error) {
	return h.edit(h.editors, name, raw)
}
