package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codelabs/pkg/wheel"
)

// wheelCommand creates the wheel command.
func (c *CLI) wheelCommand() *cobra.Command {
	var (
		sectors int
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Spin the selection wheel in the terminal",
		Long: `Spin a weighted selection wheel.

Every selected sector loses half its weight to the others, so recent
winners become less likely on the next spin.

Keys: space spin, r reset, +/- change sectors, w toggle weights, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sectors") {
				sectors = cfg.Wheel.Sectors
			}

			opts := []wheel.Option{wheel.WithConfig(cfg.WheelConfig())}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, wheel.WithSeed(seed))
			}
			e, err := wheel.NewDefault(sectors, opts...)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(newWheelModel(e), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&sectors, "sectors", "n", 2, "number of sectors (1-12)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible spins")

	return cmd
}

// =============================================================================
// wheelModel - bubbletea driver for wheel.Engine
// =============================================================================

const wheelRadius = 7

// wheelTickMsg advances the spin. gen ties a tick to the spin that
// scheduled it so ticks left over from a reset spin are dropped.
type wheelTickMsg struct {
	gen int
	at  time.Time
}

type wheelModel struct {
	engine      *wheel.Engine
	gen         int
	last        time.Time
	showWeights bool
	status      string
}

func newWheelModel(e *wheel.Engine) wheelModel {
	return wheelModel{engine: e}
}

func (m wheelModel) Init() tea.Cmd {
	return nil
}

func (m wheelModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.engine.FrameInterval(), func(t time.Time) tea.Msg {
		return wheelTickMsg{gen: gen, at: t}
	})
}

func (m wheelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space", "enter":
			if _, ok := m.engine.StartSpin(); ok {
				m.gen++
				m.last = time.Now()
				m.status = ""
				return m, m.tick()
			}
		case "r":
			m.engine.Reset()
			m.gen++
			m.status = ""
		case "+", "=":
			m.resize(len(m.engine.Sectors()) + 1)
		case "-":
			m.resize(len(m.engine.Sectors()) - 1)
		case "w":
			m.showWeights = !m.showWeights
		}

	case wheelTickMsg:
		if msg.gen != m.gen || !m.engine.Spinning() {
			return m, nil
		}
		dt := msg.at.Sub(m.last)
		m.last = msg.at
		if _, spinning := m.engine.Tick(dt); spinning {
			return m, m.tick()
		}
	}
	return m, nil
}

func (m *wheelModel) resize(n int) {
	if err := m.engine.Resize(n); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m wheelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Selection wheel"))
	b.WriteString("\n\n")
	b.WriteString(renderWheel(m.engine, wheelRadius))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.showWeights {
		b.WriteString("\n")
		b.WriteString(renderWeights(m.engine.Distribution(), 4*wheelRadius+1))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space spin  r reset  +/- sectors  w weights  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m wheelModel) statusLine() string {
	switch {
	case m.status != "":
		return StyleWarning.Render(m.status)
	case m.engine.Spinning():
		return StyleDim.Render("Spinning...")
	}
	if i, ok := m.engine.Selected(); ok && !m.engine.Spinning() {
		s := m.engine.Sectors()[i]
		return "Selected " + sectorStyle(s).Bold(true).Render(s.Label)
	}
	return StyleDim.Render("Press space to spin")
}

func sectorStyle(s wheel.Sector) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
}

// renderWheel draws the wheel as a disc of colored cells with the pointer
// above it. Cells are twice as tall as wide, so columns are halved.
func renderWheel(e *wheel.Engine, radius int) string {
	sectors := e.Sectors()
	n := len(sectors)
	angle := e.Angle()
	width := 4*radius + 1

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width/2))
	b.WriteString(StyleTitle.Render("▼"))
	b.WriteString("\n")

	r := float64(radius) + 0.5
	for y := -radius; y <= radius; y++ {
		for x := -2 * radius; x <= 2*radius; x++ {
			dx, dy := float64(x)/2, float64(y)
			switch d := math.Hypot(dx, dy); {
			case d > r:
				b.WriteByte(' ')
			case d < 1:
				b.WriteString("●")
			default:
				i := wheel.SectorAt(angle, math.Atan2(dy, dx), n)
				b.WriteString(sectorStyle(sectors[i]).Render("█"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderWeights draws the weight distribution as one bar of width cells
// followed by a per-sector legend.
func renderWeights(dist []wheel.Segment, width int) string {
	var bar, legend strings.Builder
	used := 0
	for i, s := range dist {
		cells := int(math.Round(s.Percent / 100 * float64(width)))
		if i == len(dist)-1 {
			cells = width - used
		}
		cells = max(0, min(cells, width-used))
		used += cells

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		bar.WriteString(style.Render(strings.Repeat("█", cells)))
		fmt.Fprintf(&legend, "%s %s %s\n",
			style.Render("■"), StyleValue.Render(fmt.Sprintf("%-3s", s.Label)), StyleDim.Render(fmt.Sprintf("%5.1f%%", s.Percent)))
	}
	return bar.String() + "\n" + legend.String()
}
