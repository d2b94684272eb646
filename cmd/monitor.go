// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
// Copyright (c) 2025 The mecom-go Authors

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/houlihaj/mecom-go/pkg/tec"
)

var (
	monitorInterval time.Duration
	monitorRecord   string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live temperature and output monitor",
	Long: `Polls the device and shows object and sink temperatures, the
instantaneous setpoint and the TEC output in a full screen view.

Press 's' to enter a new target temperature, 'q' to quit.

With --record, every sample is appended to a CBOR stream file for
later analysis.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", time.Second, "Poll interval")
	monitorCmd.Flags().StringVar(&monitorRecord, "record", "", "Append samples to a CBOR stream file")
	rootCmd.AddCommand(monitorCmd)
}

// sample is one polled snapshot. Integer keys keep the recording
// compact.
type sample struct {
	Timestamp  int64   `cbor:"1,keyasint"` // unix milliseconds
	Object     float32 `cbor:"2,keyasint"`
	Sink       float32 `cbor:"3,keyasint"`
	Target     float32 `cbor:"4,keyasint"`
	Current    float32 `cbor:"5,keyasint"`
	Voltage    float32 `cbor:"6,keyasint"`
	Stability  int32   `cbor:"7,keyasint"`
	PollFailed bool    `cbor:"8,keyasint,omitempty"`
}

type monitorTickMsg time.Time

type sampleMsg struct {
	sample sample
	err    error
}

type monitorModel struct {
	dev      *tec.Device
	connInfo string
	interval time.Duration

	latest    *sample
	pollErr   error
	pollCount uint64
	failCount uint64

	input     textinput.Model
	entering  bool
	statusMsg string

	recorder *cbor.Encoder

	width    int
	height   int
	quitting bool
}

func newMonitorModel(dev *tec.Device, connInfo string, recorder *cbor.Encoder) monitorModel {
	ti := textinput.New()
	ti.Placeholder = "target degC"
	ti.CharLimit = 12
	ti.Width = 16
	return monitorModel{
		dev:      dev,
		connInfo: connInfo,
		interval: monitorInterval,
		input:    ti,
		recorder: recorder,
		width:    80,
		height:   24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		m.pollCmd(),
		tea.EnterAltScreen,
	)
}

func (m monitorModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

// pollCmd reads one snapshot from the device off the UI goroutine.
func (m monitorModel) pollCmd() tea.Cmd {
	dev := m.dev
	return func() tea.Msg {
		s := sample{Timestamp: time.Now().UnixMilli()}
		var err error
		if s.Object, err = dev.Temperature(); err != nil {
			return sampleMsg{err: err}
		}
		if s.Sink, err = dev.SinkTemperature(); err != nil {
			return sampleMsg{err: err}
		}
		if s.Target, err = dev.TargetTemperature(); err != nil {
			return sampleMsg{err: err}
		}
		if s.Current, err = dev.Current(); err != nil {
			return sampleMsg{err: err}
		}
		if s.Voltage, err = dev.Voltage(); err != nil {
			return sampleMsg{err: err}
		}
		stability, err := dev.TemperatureStability()
		if err != nil {
			return sampleMsg{err: err}
		}
		s.Stability = int32(stability)
		return sampleMsg{sample: s}
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			switch msg.String() {
			case "enter":
				value := strings.TrimSpace(m.input.Value())
				m.entering = false
				m.input.Blur()
				m.input.SetValue("")
				if value == "" {
					return m, nil
				}
				celsius, err := strconv.ParseFloat(value, 32)
				if err != nil {
					m.statusMsg = fmt.Sprintf("invalid temperature %q", value)
					return m, nil
				}
				if err := m.dev.SetTemperature(float32(celsius)); err != nil {
					m.statusMsg = fmt.Sprintf("set failed: %v", err)
					return m, nil
				}
				m.statusMsg = fmt.Sprintf("target set to %.3f degC", celsius)
				return m, nil
			case "esc":
				m.entering = false
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "s":
			m.entering = true
			m.input.Focus()
			return m, textinput.Blink
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case monitorTickMsg:
		return m, m.pollCmd()

	case sampleMsg:
		m.pollCount++
		if msg.err != nil {
			m.failCount++
			m.pollErr = msg.err
			if m.recorder != nil {
				_ = m.recorder.Encode(sample{
					Timestamp:  time.Now().UnixMilli(),
					PollFailed: true,
				})
			}
		} else {
			m.pollErr = nil
			s := msg.sample
			m.latest = &s
			if m.recorder != nil {
				_ = m.recorder.Encode(s)
			}
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("MECOM - TEC MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Address %d channel %d | 's' set target, 'q' quit",
		m.connInfo, m.dev.Address(), m.dev.Channel())))
	s.WriteString("\n\n")

	content := strings.Builder{}
	if m.latest == nil {
		content.WriteString(headerStyle.Render("waiting for first sample..."))
	} else {
		content.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Object:"), valueStyle.Render(fmt.Sprintf("%8.3f degC", m.latest.Object)),
			labelStyle.Render("Sink:"), valueStyle.Render(fmt.Sprintf("%8.3f degC", m.latest.Sink)),
		))
		content.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Target:"), valueStyle.Render(fmt.Sprintf("%8.3f degC", m.latest.Target)),
			labelStyle.Render("Stability:"), valueStyle.Render(tec.Stability(m.latest.Stability).String()),
		))
		content.WriteString(fmt.Sprintf("%s %s",
			labelStyle.Render("Output:"), valueStyle.Render(fmt.Sprintf("%.3f A @ %.3f V", m.latest.Current, m.latest.Voltage)),
		))
	}
	s.WriteString(boxStyle.Render(content.String()))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render(fmt.Sprintf("Polls: %d", m.pollCount)))
	if m.failCount > 0 {
		s.WriteString("  ")
		s.WriteString(errorStyle.Render(fmt.Sprintf("Failed: %d", m.failCount)))
	}
	s.WriteString("\n")

	if m.pollErr != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Poll error: %v", m.pollErr)))
		s.WriteString("\n")
	}
	if m.statusMsg != "" {
		s.WriteString(valueStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}
	if m.entering {
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("New target: "))
		s.WriteString(m.input.View())
		s.WriteString("\n")
	}

	return s.String()
}

func runMonitor(cmd *cobra.Command, args []string) error {
	dev, connInfo, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	var recorder *cbor.Encoder
	if monitorRecord != "" {
		f, err := os.OpenFile(monitorRecord, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open record file: %v", err)
		}
		defer f.Close()
		recorder = cbor.NewEncoder(f)
	}

	p := tea.NewProgram(newMonitorModel(dev, connInfo, recorder))
	_, err = p.Run()
	return err
}
