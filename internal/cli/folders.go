package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"halil/internal/todo"
)

func foldersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listFolders(cmd)
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List folders with their open todo count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listFolders(cmd)
		},
	}

	add := &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, _ := cmd.Flags().GetString("color")
			f, err := a.store.AddFolder(todo.FolderInput{Name: strings.Join(args, " "), Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "폴더를 만들었습니다 %s (%s)\n", f.Name, f.ID)
			return nil
		},
	}
	add.Flags().String("color", "", "hex color (default a random pastel)")

	rename := &cobra.Command{
		Use:   "rename <folder> <name...>",
		Short: "Rename a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.findFolder(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if f, err = a.store.UpdateFolder(f.ID, todo.FolderPatch{Name: &name}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "이름을 바꿨습니다 %s (%s)\n", f.Name, f.ID)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <folder>",
		Short: "Delete a folder, moving its todos to " + string(todo.DefaultFolderID),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			f, err := a.findFolder(args[0])
			if err != nil {
				return err
			}
			ok, err := a.store.RemoveFolder(f.ID, confirmer(cmd, yes))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "취소했습니다")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "폴더를 삭제했습니다: %s\n", f.Name)
			return nil
		},
	}
	rm.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(ls, add, rename, rm)
	return cmd
}

func (a *app) listFolders(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %-10s %3d\n", todo.AllFolders, "전체", a.store.CountAll())
	for _, f := range a.store.Folders() {
		fmt.Fprintf(out, "%-16s %-10s %3d  %s\n", f.ID, f.Name, a.store.CountByFolder(f.ID), f.Color)
	}
	return nil
}

func resetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every todo and folder and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !confirmer(cmd, yes)("모든 할일과 폴더를 지우고 처음 상태로 되돌릴까요?") {
				fmt.Fprintln(cmd.OutOrStdout(), "취소했습니다")
				return nil
			}
			a.store.Reset()
			a.log.Info().Msg("data reset from cli")
			fmt.Fprintln(cmd.OutOrStdout(), "초기화했습니다")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}
