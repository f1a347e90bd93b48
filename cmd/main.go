// Команда raspisanie-admin: обслуживание базы расписаний без HTTP-сервера.
package main

import (
	"context"
	"fmt"
	"os"

	"raspisanie/internal/config"
	"raspisanie/internal/export"
	"raspisanie/internal/storage"
	"raspisanie/internal/tasks"
	"raspisanie/internal/timetable"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "raspisanie-admin",
		Short:         "Обслуживание базы расписаний",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newExportCmd(), newAuditCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

func connect() *timetable.Service {
	cfg := config.Load()
	storage.ConnectDatabase(cfg)
	return timetable.NewService(storage.DB, cfg.SaveRetries)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Создать или обновить таблицы",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := connect()
			if err := storage.Migrate(svc.DB); err != nil {
				return err
			}
			fmt.Println("Миграция выполнена")
			return nil
		},
	}
}

type exportOptions struct {
	scheduleID uint
	out        string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузить расписание в xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), connect(), opts)
		},
	}
	cmd.Flags().UintVar(&opts.scheduleID, "schedule", 0, "ID расписания (обязательно)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Путь к файлу (по умолчанию <название>.xlsx)")
	_ = cmd.MarkFlagRequired("schedule")
	return cmd
}

func runExport(ctx context.Context, svc *timetable.Service, opts exportOptions) error {
	sched, table, err := svc.ExportSchedule(ctx, opts.scheduleID)
	if err != nil {
		return err
	}
	path := opts.out
	if path == "" {
		path = sched.Name + ".xlsx"
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(f, table); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Расписание «%s» выгружено в %s (%d строк)\n", sched.Name, path, len(table.Rows))
	return nil
}

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Проверить сохраненные расписания на пересечения",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(connect())
		},
	}
}

// runAudit завершается ошибкой и при недоступной базе, и при найденных пересечениях
func runAudit(svc *timetable.Service) error {
	n, err := tasks.AuditConflicts(svc)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("найдено пересечений: %d", n)
	}
	return nil
}
