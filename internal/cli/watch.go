package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wayfinder/pkg/search"
)

// watchCommand creates the watch command, an interactive view that steps the
// search one expansion at a time.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts      sourceOpts
		heuristic string
		weight    float64
	)

	cmd := &cobra.Command{
		Use:   "watch <start> <goal>",
		Short: "Step through a search interactively",
		Long: `Watch runs the search one expansion per keypress, showing the frontier
and the settled set as they evolve. Press space to step, a to autoplay,
q to quit.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), opts, heuristic, weight, args[0], args[1])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&heuristic, "heuristic", "none", "goal estimator: euclidean, manhattan, none")
	cmd.Flags().Float64Var(&weight, "weight", 1, "estimator scale factor")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts sourceOpts, heuristicName string, weight float64, start, goal string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	src, err := c.openSource(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer src.close()

	est, err := buildEstimator(heuristicName, weight, goal, src.coords)
	if err != nil {
		return err
	}
	var fopts []search.Option[string]
	if est != nil {
		fopts = append(fopts, search.WithEstimator(est))
	}
	finder, err := search.New[string](src.expander, fopts...)
	if err != nil {
		return err
	}

	model := newWatchModel(ctx, finder.Stepper(start, goal), start, goal)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// WatchModel - Interactive search stepping
// =============================================================================

// stepMsg carries the outcome of one search step.
type stepMsg struct {
	snap search.Snapshot[string]
	err  error
}

// autoTickMsg drives autoplay.
type autoTickMsg struct{}

const autoStepInterval = 300 * time.Millisecond

// watchModel is the bubbletea model for interactive search stepping.
type watchModel struct {
	ctx     context.Context
	stepper *search.Stepper[string]
	start   string
	goal    string

	snap    search.Snapshot[string]
	stepped bool
	err     error
	auto    bool
}

func newWatchModel(ctx context.Context, st *search.Stepper[string], start, goal string) watchModel {
	return watchModel{ctx: ctx, stepper: st, start: start, goal: goal}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) step() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.stepper.Step(m.ctx)
		return stepMsg{snap: snap, err: err}
	}
}

func autoTick() tea.Cmd {
	return tea.Tick(autoStepInterval, func(time.Time) tea.Msg {
		return autoTickMsg{}
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter", "right":
			if m.snap.Done || m.err != nil {
				return m, nil
			}
			return m, m.step()
		case "a":
			m.auto = !m.auto
			if m.auto && !m.snap.Done && m.err == nil {
				return m, m.step()
			}
		}
	case stepMsg:
		m.snap = msg.snap
		m.err = msg.err
		m.stepped = true
		if m.auto && !m.snap.Done && m.err == nil {
			return m, autoTick()
		}
	case autoTickMsg:
		if m.auto && !m.snap.Done && m.err == nil {
			return m, m.step()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Wayfinder"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s %s %s\n", m.start, iconArrow, m.goal)))
	b.WriteString(StyleDim.Render("space step  a autoplay  q quit"))
	b.WriteString("\n\n")

	if !m.stepped {
		b.WriteString(StyleDim.Render("Press space to take the first step.\n"))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		StyleDim.Render("iteration"), StyleNumber.Render(fmt.Sprintf("%d", m.snap.Iterations)),
		StyleDim.Render("expanded"), StyleValue.Render(m.snap.Current)))
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n\n",
		StyleDim.Render("frontier"), StyleNumber.Render(fmt.Sprintf("%d", len(m.snap.Open))),
		StyleDim.Render("settled"), StyleNumber.Render(fmt.Sprintf("%d", len(m.snap.Closed)))))

	b.WriteString(m.frontierView())

	if m.snap.Done {
		b.WriteString("\n")
		switch {
		case m.snap.Found && m.snap.Result != nil:
			b.WriteString(styleIconSuccess.Render(iconSuccess) +
				fmt.Sprintf(" Found path with cost %s\n  %s\n",
					formatCost(m.snap.Result.Cost),
					formatPath(m.start, m.snap.Result.Path)))
		default:
			b.WriteString(styleIconWarning.Render(iconWarning) + " No path found\n")
		}
	}
	return b.String()
}

// frontierView lists the cheapest open nodes, best first.
func (m watchModel) frontierView() string {
	type entry struct {
		node string
		cost float64
	}
	entries := make([]entry, 0, len(m.snap.Open))
	for n, cost := range m.snap.Open {
		entries = append(entries, entry{node: n, cost: cost})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].cost != entries[j].cost {
			return entries[i].cost < entries[j].cost
		}
		return entries[i].node < entries[j].node
	})

	const maxRows = 10
	var b strings.Builder
	for i, e := range entries {
		if i == maxRows {
			b.WriteString(StyleDim.Render(fmt.Sprintf("  … %d more\n", len(entries)-maxRows)))
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleValue.Render(e.node), StyleDim.Render("("+formatCost(e.cost)+")")))
	}
	return b.String()
}
