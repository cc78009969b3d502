package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/benefit"
	"github.com/odyssey-erp/hrportal/internal/masterdata/golongan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/jabatan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/jenisizin"
	"github.com/odyssey-erp/hrportal/internal/masterdata/struktur"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// configFunc builds the controller configuration of one list.
type configFunc[R any] func(cmd *cobra.Command, rt *runtime) (liststate.Config[R], error)

func golonganCmd() *cobra.Command {
	return listCommand("golongan", "Golongan", func(_ *cobra.Command, rt *runtime) (liststate.Config[golongan.Golongan], error) {
		return golongan.Config(rt.services.Golongan, rt.session), nil
	})
}

func jabatanCmd() *cobra.Command {
	return listCommand("jabatan", "Jabatan", func(_ *cobra.Command, rt *runtime) (liststate.Config[jabatan.Jabatan], error) {
		return jabatan.Config(rt.services.Jabatan, rt.session), nil
	})
}

func jenisIzinCmd() *cobra.Command {
	cmd := listCommand("jenis-izin", "Jenis Izin", func(_ *cobra.Command, rt *runtime) (liststate.Config[jenisizin.JenisIzin], error) {
		return jenisizin.Config(rt.services.JenisIzin, rt.session), nil
	})
	cmd.Aliases = []string{"jenisizin"}
	return cmd
}

func strukturCmd() *cobra.Command {
	return listCommand("struktur", "Struktur", func(_ *cobra.Command, rt *runtime) (liststate.Config[struktur.Struktur], error) {
		return struktur.Config(rt.services.Struktur, rt.session), nil
	})
}

func benefitCmd() *cobra.Command {
	var golonganID string
	cmd := listCommand("benefit", "Detail benefit of one golongan", func(_ *cobra.Command, rt *runtime) (liststate.Config[benefit.Benefit], error) {
		if strings.TrimSpace(golonganID) == "" {
			return liststate.Config[benefit.Benefit]{}, errors.New("--golongan wajib diisi")
		}
		return benefit.Config(rt.services.Benefit, rt.session, golonganID), nil
	})
	cmd.PersistentFlags().StringVar(&golonganID, "golongan", "", "golongan id whose benefits are listed")
	return cmd
}

// listCommand builds "<name> ls" and "<name> toggle" around one list.
func listCommand[R any](name, short string, build configFunc[R]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}
	cmd.AddCommand(lsCommand(build), toggleCommand(build))
	return cmd
}

func lsCommand[R any](build configFunc[R]) *cobra.Command {
	var (
		search string
		sort   string
		status string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print one page of the list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := newController(cmd, build)
			if err != nil {
				return err
			}
			if err := applyView(cmd, ctrl, search, sort, status); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			if page > 1 && !ctrl.SetPage(page) {
				return fmt.Errorf("halaman %d di luar jangkauan", page)
			}
			printPage(cmd.OutOrStdout(), ctrl.Derive())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().StringVar(&sort, "sort", "", "sort key, e.g. \"[Golongan] desc\"")
	cmd.Flags().StringVar(&status, "status", "", "status filter (Aktif, Tidak Aktif, Semua)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func toggleCommand[R any](build configFunc[R]) *cobra.Command {
	var (
		column string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the status (or a flag column) of one record.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !stdinIsTerminal() {
				return errors.New("stdin bukan terminal; gunakan --yes")
			}
			ctrl, err := newController(cmd, build)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			var confirmer liststate.Confirmer = TerminalConfirmer{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			if yes {
				confirmer = liststate.ConfirmFunc(func(_ context.Context, _, _ string) bool { return true })
			}
			err = ctrl.Toggle(ctx, args[0], column,
				liststate.WithConfirmer(confirmer),
				liststate.WithNotifier(WriterNotifier{W: cmd.ErrOrStderr()}),
			)
			if errors.Is(err, shared.ErrToggleDeclined) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Dibatalkan.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&column, "column", "c", liststate.StatusColumn, "column to flip")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func newController[R any](cmd *cobra.Command, build configFunc[R]) (*liststate.Controller[R], error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := build(cmd, rt)
	if err != nil {
		return nil, err
	}
	cfg.PageSize = rt.pageSize
	return liststate.New(cfg), nil
}

// applyView sets the requested view, rejecting unknown sort keys.
func applyView[R any](cmd *cobra.Command, ctrl *liststate.Controller[R], search, sort, status string) error {
	if cmd.Flags().Changed("sort") {
		keys := make([]string, 0, len(ctrl.Sorts()))
		found := false
		for _, opt := range ctrl.Sorts() {
			keys = append(keys, strconv.Quote(opt.Key))
			found = found || opt.Key == sort
		}
		if !found {
			return fmt.Errorf("sort %q tidak dikenal; pilihan: %s", sort, strings.Join(keys, ", "))
		}
		ctrl.SetSort(sort)
	}
	if search != "" {
		ctrl.SetSearch(search)
	}
	if cmd.Flags().Changed("status") {
		ctrl.SetStatusFilter(status)
	}
	return nil
}

func printPage(w io.Writer, page liststate.Page) {
	if len(page.Rows) == 0 {
		fmt.Fprintln(w, "Tidak ada data.")
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.Wrap = true

	header := []any{"NO", "ID"}
	for _, cell := range page.Rows[0].Cells {
		header = append(header, strings.ToUpper(cell.Label))
	}
	tbl.AddRow(header...)
	for _, row := range page.Rows {
		values := []any{row.No, row.ID}
		for _, cell := range row.Cells {
			values = append(values, cell.Value)
		}
		tbl.AddRow(values...)
	}
	fmt.Fprintln(w, tbl)
	fmt.Fprintf(w, "Halaman %d dari %d (%d data)\n", page.Current, page.TotalPages, page.Total)
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
