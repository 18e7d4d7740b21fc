package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasi-host/host"
	"github.com/wippyai/wasi-host/wasip1"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type dirEntry struct {
	name  string
	ino   wasip1.Inode
	ftype wasip1.Filetype
}

// listEntries drains a directory node into a sorted entry list, skipping
// the "." and ".." records.
func listEntries(d *host.INode) ([]dirEntry, error) {
	var entries []dirEntry
	buf := make([]byte, 4096)
	var cookie wasip1.Dircookie
	for {
		used, errno := d.FdReaddir(buf, cookie)
		if errno != wasip1.ErrnoSuccess {
			return nil, errno
		}
		if used == 0 {
			break
		}
		off := uint32(0)
		for off < used {
			next, ino, namlen, ftype := wasip1.ParseDirent(buf[off:])
			name := string(buf[off+wasip1.DirentSize : off+wasip1.DirentSize+namlen])
			if name != "." && name != ".." {
				entries = append(entries, dirEntry{name: name, ino: ino, ftype: ftype})
			}
			cookie = next
			off += wasip1.DirentSize + namlen
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries, nil
}

type browserState int

const (
	stateBrowse browserState = iota
	stateStat
	stateGoto
)

type browserModel struct {
	err      error
	dir      string
	entries  []dirEntry
	stat     wasip1.Filestat
	statName string
	input    textinput.Model
	selected int
	state    browserState
}

type loadedMsg struct {
	err     error
	dir     string
	entries []dirEntry
}

type statMsg struct {
	err  error
	name string
	stat wasip1.Filestat
}

func newBrowserModel(dir string) *browserModel {
	return &browserModel{dir: dir, state: stateBrowse}
}

func (m *browserModel) Init() tea.Cmd {
	return loadDir(m.dir)
}

func loadDir(path string) tea.Cmd {
	return func() tea.Msg {
		abs, err := filepath.Abs(path)
		if err != nil {
			return loadedMsg{err: err}
		}
		d, errno := host.Open(abs, wasip1.OflagsDirectory, 0, wasip1.AccessRead)
		if errno != wasip1.ErrnoSuccess {
			return loadedMsg{err: fmt.Errorf("open %s: %w", abs, errno)}
		}
		defer d.Close()
		entries, err := listEntries(d)
		if err != nil {
			return loadedMsg{err: fmt.Errorf("read %s: %w", abs, err)}
		}
		return loadedMsg{dir: abs, entries: entries}
	}
}

func statPath(path string) tea.Cmd {
	return func() tea.Msg {
		n, errno := host.Open(path, 0, 0, wasip1.AccessRead)
		if errno != wasip1.ErrnoSuccess {
			return statMsg{err: fmt.Errorf("open %s: %w", path, errno)}
		}
		defer n.Close()
		st, errno := n.FdFilestatGet()
		if errno != wasip1.ErrnoSuccess {
			return statMsg{err: fmt.Errorf("filestat %s: %w", path, errno)}
		}
		return statMsg{name: path, stat: st}
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateGoto {
			switch msg.String() {
			case "enter":
				target := m.input.Value()
				m.state = stateBrowse
				if target != "" {
					return m, loadDir(target)
				}
				return m, nil
			case "esc":
				m.state = stateBrowse
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.entries) == 0 {
					return m, nil
				}
				e := m.entries[m.selected]
				target := filepath.Join(m.dir, e.name)
				if e.ftype == wasip1.FiletypeDirectory {
					return m, loadDir(target)
				}
				return m, statPath(target)
			case stateStat:
				m.state = stateBrowse
				m.err = nil
			}

		case "backspace", "h":
			if m.state == stateBrowse {
				return m, loadDir(filepath.Dir(m.dir))
			}

		case "g":
			if m.state == stateBrowse {
				ti := textinput.New()
				ti.Placeholder = "/path/to/dir"
				ti.Prompt = "go to: "
				ti.Width = 60
				ti.Focus()
				m.input = ti
				m.state = stateGoto
			}

		case "esc":
			if m.state == stateStat {
				m.state = stateBrowse
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.dir = msg.dir
		m.entries = msg.entries
		m.selected = 0
		m.err = nil

	case statMsg:
		m.err = msg.err
		m.stat = msg.stat
		m.statName = msg.name
		m.state = stateStat
	}

	return m, nil
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("File Probe"))
	b.WriteString(" ")
	b.WriteString(m.dir)
	b.WriteString("\n\n")

	if m.err != nil && m.state != stateStat {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateBrowse:
		if len(m.entries) == 0 {
			b.WriteString(helpStyle.Render("(empty directory)"))
			b.WriteString("\n")
		}
		for i, e := range m.entries {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatEntry(e)))
			} else {
				b.WriteString(cursor + m.formatEntry(e))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • backspace up • g go to • q quit"))

	case stateStat:
		b.WriteString(fmt.Sprintf("Status of %s:\n\n", fileStyle.Render(m.statName)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			st := m.stat
			b.WriteString(statStyle.Render(fmt.Sprintf("type %v, %d bytes, %d links", st.Filetype, st.Size, st.Nlink)))
			b.WriteString("\n")
			b.WriteString(statStyle.Render(fmt.Sprintf("inode %d on device %d", st.Ino, st.Dev)))
			b.WriteString("\n")
			b.WriteString(statStyle.Render("modified " + time.Unix(0, int64(st.Mtim)).Format(time.RFC3339)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))

	case stateGoto:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter go • esc cancel"))
	}

	return b.String()
}

func (m *browserModel) formatEntry(e dirEntry) string {
	name := e.name
	switch e.ftype {
	case wasip1.FiletypeDirectory:
		name = dirStyle.Render(name + "/")
	case wasip1.FiletypeRegularFile:
		name = fileStyle.Render(name)
	}
	return name
}

func runInteractive(dir string) error {
	p := tea.NewProgram(newBrowserModel(dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
