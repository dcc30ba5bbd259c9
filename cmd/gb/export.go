package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/gradebook/internal/export"
	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/prompt"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var dir string
	var force bool
	formats := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		formats = append(formats, string(f))
	}
	cmd := &cobra.Command{
		Use:       messages.ExportUse,
		Short:     messages.ExportShort,
		Args:      cobra.ExactArgs(1),
		ValidArgs: formats,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				data, err := export.Render(format, a.store.Students(), a.store.Columns())
				if err != nil {
					return err
				}
				writer := export.Writer{
					Dir:          a.cfg.Export.Dir,
					Force:        force,
					DiffMaxLines: a.cfg.Export.DiffLines,
					Out:          a.out,
				}
				if dir != "" {
					writer.Dir = dir
				}
				if isInteractive() {
					writer.Overwrite = prompt.Overwrite(newUI())
				}
				path, err := writer.Write(format, data)
				if errors.Is(err, export.ErrOverwriteDeclined) {
					if writer.Overwrite == nil {
						return errors.New(messages.ExportNeedsForce)
					}
					_, _ = noticeColor.Fprintln(a.out, messages.Cancelled)
					return nil
				}
				if err != nil {
					return err
				}
				a.logger.Info("roster exported",
					zap.String("format", string(format)),
					zap.String("path", path),
					zap.Int("students", a.store.Len()),
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", messages.ExportFlagDir)
	cmd.Flags().BoolVar(&force, "force", false, messages.ExportFlagForce)
	return cmd
}
