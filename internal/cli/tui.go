package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/family"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listSearchStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// MemberBrowserModel - Interactive member selection
// =============================================================================

// SearchFunc returns the members matching a name query.
type SearchFunc func(query string) []family.Member

// MemberBrowserModel is the bubbletea model for browsing members.
// "/" starts a name search; enter selects the member under the cursor.
type MemberBrowserModel struct {
	All       []family.Member
	Members   []family.Member
	Cursor    int
	Selected  *family.Member
	Height    int
	Offset    int
	Query     string
	Searching bool

	search      SearchFunc
	currentYear int
}

// NewMemberBrowserModel creates a browser over members.
func NewMemberBrowserModel(members []family.Member, search SearchFunc, currentYear int) MemberBrowserModel {
	return MemberBrowserModel{
		All:         members,
		Members:     members,
		Height:      15,
		search:      search,
		currentYear: currentYear,
	}
}

func (m MemberBrowserModel) Init() tea.Cmd {
	return nil
}

func (m MemberBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.Searching = true
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Members)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Members) == 0 {
				return m, nil
			}
			selected := m.Members[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MemberBrowserModel) updateSearch(msg tea.KeyMsg) MemberBrowserModel {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Searching = false
		m.Query = ""
	case tea.KeyEnter:
		m.Searching = false
		return m
	case tea.KeyBackspace:
		if r := []rune(m.Query); len(r) > 0 {
			m.Query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Query += " "
	case tea.KeyRunes:
		m.Query += string(msg.Runes)
	default:
		return m
	}
	return m.filter()
}

func (m MemberBrowserModel) filter() MemberBrowserModel {
	if strings.TrimSpace(m.Query) == "" || m.search == nil {
		m.Members = m.All
	} else {
		m.Members = m.search(m.Query)
	}
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m MemberBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Family Members"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  / search  ⏎ select  q quit"))
	b.WriteString("\n")
	switch {
	case m.Searching:
		b.WriteString(listSearchStyle.Render("/" + m.Query + "▏"))
	case m.Query != "":
		b.WriteString(listDimStyle.Render("filter: " + m.Query))
	}
	b.WriteString("\n\n")

	if len(m.Members) == 0 {
		b.WriteString(listDimStyle.Render("  no matching members"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Members))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		mem := m.Members[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, mem.DisplayName(), lifespan(mem, m.currentYear), string(mem.Gender), mem.ID})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Lifespan", "Gender", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Members) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = genderStyle(m.Members[idx].Gender)
			}
			if col == 4 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Members))))

	return b.String()
}

// browseCommand opens the interactive member browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and search members interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			members := r.Tree.Snapshot()
			if len(members) == 0 {
				printInfo("The tree is empty")
				return nil
			}
			model := NewMemberBrowserModel(members, r.Tree.Search, r.CurrentYear())
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if m, ok := final.(MemberBrowserModel); ok && m.Selected != nil {
				return showMember(cmd.OutOrStdout(), r, m.Selected.ID)
			}
			return nil
		},
	}
}
