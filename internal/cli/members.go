package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/pipeline"
	"github.com/matzehuels/familytower/pkg/tree"
)

// memberFlags holds the member fields shared by init, add and edit.
type memberFlags struct {
	firstName string
	surname   string
	birth     string
	death     string
	gender    string
	bio       string
	photo     string
}

func (f *memberFlags) register(cmd *cobra.Command, withFirstName bool) {
	fs := cmd.Flags()
	if withFirstName {
		fs.StringVar(&f.firstName, "first-name", "", "first name")
	}
	fs.StringVar(&f.surname, "surname", "", "surname")
	fs.StringVar(&f.birth, "birth", "", "birth year (YYYY)")
	fs.StringVar(&f.death, "death", "", "death year (YYYY), empty when living")
	fs.StringVar(&f.gender, "gender", "", "male, female or other")
	fs.StringVar(&f.bio, "bio", "", "short biography")
	fs.StringVar(&f.photo, "photo", "", "photo URL")
}

func (f *memberFlags) draft() (family.Draft, error) {
	g, err := family.ParseGender(f.gender)
	if err != nil {
		return family.Draft{}, err
	}
	return family.Draft{
		FirstName: f.firstName,
		Surname:   f.surname,
		BirthYear: f.birth,
		DeathYear: f.death,
		Gender:    g,
		Bio:       f.bio,
		PhotoURL:  f.photo,
	}, nil
}

// patch builds a patch from the flags the user actually set.
func (f *memberFlags) patch(cmd *cobra.Command) family.Patch {
	var p family.Patch
	changed := cmd.Flags().Changed
	if changed("first-name") {
		p.FirstName = &f.firstName
	}
	if changed("surname") {
		p.Surname = &f.surname
	}
	if changed("birth") {
		p.BirthYear = &f.birth
	}
	if changed("death") {
		p.DeathYear = &f.death
	}
	if changed("gender") {
		g := family.Gender(f.gender)
		p.Gender = &g
	}
	if changed("bio") {
		p.Bio = &f.bio
	}
	if changed("photo") {
		p.PhotoURL = &f.photo
	}
	return p
}

// initCommand creates the tree with its root member.
func (c *CLI) initCommand() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the tree with yourself as the root member",
		Long: `Create the tree with its root member. The root is always called "You";
its surname becomes the family surname inherited by parents and children.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := f.draft()
			if err != nil {
				return err
			}
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			res, err := r.AddRoot(cmd.Context(), d)
			if err != nil {
				return err
			}
			printSuccess("Created tree for %s", StyleHighlight.Render(res.Member.FullName))
			printResult(res)
			printNextStep("Add a parent", fmt.Sprintf("%s add parent %s --birth 1960", appName, res.Member.ID))
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

// addCommand attaches a new member to an existing one.
func (c *CLI) addCommand() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:   "add <parent|child|spouse> <member-id>",
		Short: "Add a parent, child or spouse of a member",
		Long: `Add a member related to an existing one.

Parents and children inherit the member's surname. A spouse takes the
opposite gender and becomes a parent of the member's children. A child of a
married member gets both spouses as parents.`,
		Example: `  familytower add parent user_1a2b3c4d --first-name John --birth 1960 --gender male
  familytower add child user_1a2b3c4d --first-name Ann --birth 2015`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeRelations(cmd, args, toComplete)
			}
			return c.completeMemberIDs(1)(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := family.ParseRelation(args[0])
			if err != nil {
				return err
			}
			d, err := f.draft()
			if err != nil {
				return err
			}
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			if allowed, err := r.Tree.AllowedRelations(args[1]); err == nil && !slices.Contains(allowed, rel) {
				printWarning("%s is not usually offered for %s", rel, args[1])
			}
			res, err := r.Add(cmd.Context(), d, rel, args[1])
			if err != nil {
				return err
			}
			printSuccess("Added %s as %s of %s", StyleHighlight.Render(res.Member.DisplayName()), rel, args[1])
			printResult(res)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

// editCommand changes the non-relation fields of a member.
func (c *CLI) editCommand() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:               "edit <member-id>",
		Short:             "Change a member's name, years, gender, bio or photo",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeMemberIDs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := f.patch(cmd)
			if p.IsEmpty() {
				return fmt.Errorf("nothing to change: pass at least one field flag")
			}
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			res, err := r.Edit(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			printSuccess("Updated %s", StyleHighlight.Render(res.Member.DisplayName()))
			printResult(res)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

// listCommand prints every member.
func (c *CLI) listCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			members := r.Tree.Snapshot()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), members)
			}
			if len(members) == 0 {
				printInfo("The tree is empty")
				printNextStep("Start it with", appName+" init --surname Doe --birth 1990")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), memberTable(members, r.CurrentYear()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

// showCommand prints one member with its relatives.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <member-id>",
		Short:             "Show a member and its relatives",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeMemberIDs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()
			return showMember(cmd.OutOrStdout(), r, args[0])
		},
	}
}

// searchCommand finds members by name.
func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Find members whose name contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			query := strings.Join(args, " ")
			matches := r.Tree.Search(query)
			if len(matches) == 0 {
				printInfo("No member matches %q", query)
				return nil
			}
			w := cmd.OutOrStdout()
			for _, m := range matches {
				line := fmt.Sprintf("%s  %s", StyleDim.Render(m.ID), StyleValue.Render(m.DisplayName()))
				if p, err := r.Focus(m.ID); err == nil {
					line += StyleDim.Render(fmt.Sprintf("  at (%.0f, %.0f)", p.X, p.Y))
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}

// =============================================================================
// Output helpers
// =============================================================================

func printResult(res *pipeline.Result) {
	printDetail("ID: %s", res.Member.ID)
	printStats(len(res.Graph.Nodes), len(res.Graph.Edges), false)
	if !res.Persisted {
		printWarning("The change is kept in memory only: the snapshot could not be saved")
	}
}

func showMember(w io.Writer, r *pipeline.Runner, id string) error {
	t := r.Tree
	m, err := t.Member(id)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, StyleTitle.Render(m.DisplayName()))
	printKeyValueTo(w, "ID", m.ID)
	printKeyValueTo(w, "Gender", string(m.Gender))
	printKeyValueTo(w, "Lifespan", lifespan(m, r.CurrentYear()))
	if m.Bio != "" {
		printKeyValueTo(w, "Bio", m.Bio)
	}
	if m.PhotoURL != "" {
		printKeyValueTo(w, "Photo", StyleLink.Render(m.PhotoURL))
	}
	printKeyValueTo(w, "Parents", names(t, m.Parents))
	printKeyValueTo(w, "Spouses", names(t, m.Spouses))

	children, _ := t.Children(id)
	childIDs := make([]string, len(children))
	for i, ch := range children {
		childIDs[i] = ch.ID
	}
	printKeyValueTo(w, "Children", names(t, childIDs))

	if allowed, err := t.AllowedRelations(id); err == nil {
		rels := make([]string, len(allowed))
		for i, rel := range allowed {
			rels[i] = string(rel)
		}
		printKeyValueTo(w, "Can add", strings.Join(rels, ", "))
	}
	return nil
}

func names(t *tree.Tree, ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if m, err := t.Member(id); err == nil {
			parts = append(parts, m.DisplayName())
		}
	}
	return strings.Join(parts, ", ")
}

// lifespan formats "1990 (34)" for living members and "1930 - 2001 (71)"
// for deceased ones.
func lifespan(m family.Member, currentYear int) string {
	if m.BirthYear == "" {
		return "-"
	}
	s := m.BirthYear
	if m.DeathYear != "" {
		s += " - " + m.DeathYear
	}
	if age, ok := m.Age(currentYear); ok {
		s += " (" + strconv.Itoa(age) + ")"
	}
	return s
}

func memberTable(members []family.Member, currentYear int) string {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			m.ID,
			m.DisplayName(),
			lifespan(m, currentYear),
			string(m.Gender),
			strconv.Itoa(len(m.Parents)),
			strconv.Itoa(len(m.Spouses)),
			strconv.Itoa(len(m.Children)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Lifespan", "Gender", "Parents", "Spouses", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorDim)
			case col == 3:
				return genderStyle(family.Gender(rows[row][3]))
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		}).
		Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
