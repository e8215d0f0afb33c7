package cli

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/studio"
)

const (
	frameInterval = 50 * time.Millisecond
	previewCols   = 32 // preview width in terminal cells; rows are half that
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorValue)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// editCommand opens the interactive editor on the current avatar.
func (c *CLI) editCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the current avatar interactively",
		Long: `Edit the current avatar in the terminal with a live preview.

  ↑/↓  choose a slot        ←/→  cycle its variant
  r    randomize            R    reset to default
  s    save a PNG           q    save and quit
  esc  quit without saving`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEditor(cmd.Context(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory for PNGs saved with s")
	return cmd
}

func (c *CLI) runEditor(ctx context.Context, dir string) error {
	ctrl, store, err := c.openCurrent(ctx)
	if err != nil {
		return err
	}
	frames := studio.NewFrames(ctrl)

	p := tea.NewProgram(newEditModel(ctx, ctrl, dir), tea.WithContext(ctx), tea.WithAltScreen())
	frames.OnPaint(func(ok bool, err error) {
		if ok || err != nil {
			p.Send(frameMsg{err: err})
		}
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = frames.Run(runCtx, frameInterval) }()
	frames.Request()

	final, err := p.Run()
	cancel()
	if err != nil {
		return err
	}

	m := final.(editModel)
	for _, path := range m.exported {
		printFile(path)
	}
	if !m.save {
		printInfo("Discarded changes")
		return nil
	}
	if err := store.Save(ctx, ctrl.Config()); err != nil {
		return err
	}
	printSuccess("Saved current avatar")
	printDetail("%s", store.Path())
	return nil
}

// frameMsg reports a painted frame, or a failed pass.
type frameMsg struct{ err error }

// editModel is the bubbletea model for the avatar editor.
type editModel struct {
	ctx      context.Context
	ctrl     *studio.Controller
	dir      string
	now      func() time.Time
	cursor   int
	preview  string
	status   string
	exported []string
	save     bool
}

func newEditModel(ctx context.Context, ctrl *studio.Controller, dir string) editModel {
	return editModel{ctx: ctx, ctrl: ctrl, dir: dir, now: time.Now}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.err != nil {
			m.status = "render failed: " + msg.err.Error()
			return m, nil
		}
		if img := m.ctrl.Frame(); img != nil {
			m.preview = halfBlocks(img, previewCols)
		}
	case tea.KeyMsg:
		slots := avatar.Slots()
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			m.save = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(slots)-1 {
				m.cursor++
			}
		case "left", "h":
			m.cycle(slots[m.cursor], -1)
		case "right", "l":
			m.cycle(slots[m.cursor], 1)
		case "r":
			m.ctrl.Randomize()
			m.status = "randomized"
		case "R":
			m.ctrl.Reset()
			m.status = "reset to default"
		case "s":
			path := filepath.Join(m.dir, studio.ExportFilename(m.now()))
			if err := exportFrame(m.ctx, m.ctrl, path); err != nil {
				m.status = "save failed: " + err.Error()
				return m, nil
			}
			m.exported = append(m.exported, path)
			m.status = "saved " + path
		}
	}
	return m, nil
}

// cycle moves slot to the next or previous variant, wrapping around.
func (m *editModel) cycle(s avatar.Slot, step int) {
	vs := avatar.Variants(s)
	i := avatar.Index(s, m.ctrl.Config().Get(s))
	next := (i + step + len(vs)) % len(vs)
	if err := m.ctrl.Set(s, vs[next]); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Avatar Editor"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ slot  ←/→ variant  r random  R reset  s save png  q save & quit  esc discard"))
	b.WriteString("\n\n")

	cfg := m.ctrl.Config()
	slots := avatar.Slots()
	rows := make([][]string, len(slots))
	for i, s := range slots {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		value := cfg.Get(s)
		if s.IsColor() {
			value = swatch(value) + " " + value
		}
		pos := fmt.Sprintf("%d/%d", avatar.Index(s, cfg.Get(s))+1, len(avatar.Variants(s)))
		rows[i] = []string{cursor, s.Label(), value, pos}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("", "Slot", "Variant", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 3:
				return listDimStyle
			case row == m.cursor:
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, t.Render(), "  ", m.preview))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(listDimStyle.Render("  " + m.status))
	}
	return b.String()
}

// halfBlocks draws img with "▀" cells, two pixels per cell: the top pixel as
// foreground and the bottom one as background.
func halfBlocks(img image.Image, cols int) string {
	thumb := imaging.Resize(img, cols, 0, imaging.Box)
	bounds := thumb.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top, _ := colorful.MakeColor(thumb.At(x, y))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top.Hex()))
			if y+1 < bounds.Max.Y {
				bottom, _ := colorful.MakeColor(thumb.At(x, y+1))
				style = style.Background(lipgloss.Color(bottom.Hex()))
			}
			b.WriteString(style.Render("▀"))
		}
		if y+2 < bounds.Max.Y {
			b.WriteString("\n")
		}
	}
	return b.String()
}
