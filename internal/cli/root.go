package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"halil/internal/config"
	"halil/internal/logging"
	"halil/internal/persist"
	"halil/internal/storage"
	"halil/internal/todo"
	"halil/internal/ui"
)

// app holds what every command needs once the config has been read.
type app struct {
	cfgPath string
	now     func() time.Time

	cfg     config.Config
	log     zerolog.Logger
	store   *todo.Store
	closers []io.Closer
}

// Execute runs the root command.
func Execute(version string) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.Version = version
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "할일 관리: folders, due dates and week/month calendars",
		Long: `halil keeps todos in folders and shows them by due date:
today, this week (Monday to Sunday) and later, with week and month calendars.

Run without arguments to open the interactive view.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.store, a.cfg, logging.Component(a.log, "ui"))
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default $"+config.EnvConfig+" or the user config dir)")

	root.AddCommand(addCmd(a))
	root.AddCommand(lsCmd(a))
	root.AddCommand(doneCmd(a))
	root.AddCommand(editCmd(a))
	root.AddCommand(rmCmd(a))
	root.AddCommand(todayCmd(a))
	root.AddCommand(weekCmd(a))
	root.AddCommand(monthCmd(a))
	root.AddCommand(foldersCmd(a))
	root.AddCommand(resetCmd(a))
	return root
}

func (a *app) open() error {
	path := a.cfgPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, logCloser)

	backend, err := storage.OpenBackend(cfg.Backend, cfg.DBPath, cfg.DataDir)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Backend).Msg("failed to open storage")
		return fmt.Errorf("open storage: %w", err)
	}
	a.closers = append(a.closers, backend)

	opts := []todo.Option{
		todo.WithLogger(logging.Component(log, "store")),
		todo.WithCategory(cfg.Category()),
		todo.WithPalette(pickFrom(cfg.Palette)),
	}
	if a.now != nil {
		opts = append(opts, todo.WithClock(a.now))
	}
	a.store = todo.NewStore(persist.New(backend, logging.Component(log, "persist")), opts...)
	a.store.Load()

	a.cfg, a.log = cfg, log
	log.Debug().Str("config", path).Str("backend", cfg.Backend).Msg("started")
	return nil
}

// close flushes the store and releases the backend and log file, in
// reverse order of opening.
func (a *app) close() {
	if a.store != nil {
		a.store.Flush()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close")
		}
	}
	a.closers = nil
}

func pickFrom(colors []string) func() string {
	if len(colors) == 0 {
		colors = todo.Palette
	}
	return func() string { return colors[rand.Intn(len(colors))] }
}

// confirmer asks on the command's input unless yes was given.
func confirmer(cmd *cobra.Command, yes bool) todo.ConfirmFunc {
	if yes {
		return func(string) bool { return true }
	}
	r := bufio.NewReader(cmd.InOrStdin())
	return func(prompt string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
		line, _ := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "네", "예":
			return true
		}
		return false
	}
}

var (
	errNoMatch   = errors.New("no todo matches")
	errAmbiguous = errors.New("more than one todo matches")
)

// findTodo resolves a full id or a unique id prefix, as printed by ls.
func (a *app) findTodo(ref string) (todo.Todo, error) {
	if t, ok := a.store.TodoByID(todo.ID(ref)); ok {
		return t, nil
	}
	var found []todo.Todo
	for _, t := range a.store.Todos() {
		if ref != "" && strings.HasPrefix(string(t.ID), ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return todo.Todo{}, fmt.Errorf("%w %q", errNoMatch, ref)
	case 1:
		return found[0], nil
	}
	return todo.Todo{}, fmt.Errorf("%w %q", errAmbiguous, ref)
}

func (a *app) findFolder(ref string) (todo.Folder, error) {
	f, ok := a.store.FindFolder(ref)
	if !ok {
		return todo.Folder{}, fmt.Errorf("folder %q: %w", ref, todo.ErrNotFound)
	}
	return f, nil
}

// folderFilter maps the --folder flag to a folder id, "" meaning all.
func (a *app) folderFilter(ref string) (todo.ID, error) {
	if ref == "" || ref == string(todo.AllFolders) {
		return todo.AllFolders, nil
	}
	f, err := a.findFolder(ref)
	return f.ID, err
}

func shortID(id todo.ID) string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}
