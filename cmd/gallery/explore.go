package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/gallery/bubbletea"
	"github.com/fwojciec/gallery/history"
	gslog "github.com/fwojciec/gallery/slog"
	"github.com/fwojciec/gallery/store"
	"github.com/fwojciec/gallery/urlsync"
)

// Run executes the explore command.
func (c *ExploreCmd) Run(deps *Dependencies) error {
	h := history.New(c.Location)
	st := gslog.NewLoggingStore(store.New(), deps.Logger)

	engine := urlsync.NewEngine(st, gslog.NewLoggingAddressBar(h, deps.Logger),
		urlsync.WithLogger(deps.Logger),
	)
	if err := engine.Mount(); err != nil {
		return err
	}
	defer engine.Unmount()

	m := bubbletea.New(bubbletea.Config{
		Store:    st,
		History:  h,
		Search:   deps.Search,
		LinkBase: c.LinkBase,
	})

	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(deps.Ctx),
		tea.WithOutput(deps.Stdout),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
