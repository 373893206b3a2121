// cleantrackctl manages a cleantrack server from the command line:
// start/stop/status via a PID file, log viewing, and data backups.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cleantrack/internal/backup"
	"cleantrack/internal/cli"
	"cleantrack/internal/config"
	"cleantrack/internal/proc"
)

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger(slog.LevelWarn)
	cfg := config.Load()

	ctl := proc.Controller{PIDFile: cfg.PIDFile, LogFile: cfg.LogFile}

	root := &cobra.Command{
		Use:           "cleantrackctl",
		Short:         "Manage the cleantrack server and its data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStartCmd(cfg, ctl),
		newStopCmd(ctl),
		newStatusCmd(ctl),
		newLogCmd(ctl),
		newBackupCmd(cfg),
		newBackupsCmd(cfg),
		newRestoreCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newStartCmd(cfg *config.Config, ctl proc.Controller) *cobra.Command {
	var binary string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the server in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if binary == "" {
				binary = siblingBinary("cleantrack")
			}
			pid, alreadyRunning, err := ctl.Start(binary, nil, nil)
			if err != nil {
				return err
			}
			if alreadyRunning {
				fmt.Printf("Server already running (pid %d)\n", pid)
				return nil
			}
			fmt.Printf("Server started (pid %d) on http://%s\n", pid, cfg.Addr())
			fmt.Printf("Logs: %s\n", ctl.LogFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&binary, "binary", "", "path to the server binary (default: cleantrack next to this tool)")
	return cmd
}

func newStopCmd(ctl proc.Controller) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stopped, err := ctl.Stop()
			if err != nil {
				return err
			}
			if !stopped {
				fmt.Println("Server is not running")
				return nil
			}
			fmt.Println("Server stopped")
			return nil
		},
	}
}

func newStatusCmd(ctl proc.Controller) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the server is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, running := ctl.Status()
			if running {
				fmt.Printf("Server running (pid %d)\n", pid)
			} else {
				fmt.Println("Server is not running")
			}
			return nil
		},
	}
}

func newLogCmd(ctl proc.Controller) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the server log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !follow {
				return ctl.Tail(os.Stdout)
			}
			if err := ctl.Tail(os.Stdout); err != nil {
				return err
			}
			stop := make(chan struct{})
			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
				<-sig
				close(stop)
			}()
			return ctl.Follow(os.Stdout, stop)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing new log lines")
	return cmd
}

func newBackupCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Archive the data files into a timestamped backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := backup.Create(cfg.DataDir, cfg.BackupsDir, time.Now())
			if errors.Is(err, backup.ErrNothingToBackUp) {
				return fmt.Errorf("no data files found in %s, nothing to back up", cfg.DataDir)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", path)
			return nil
		},
	}
}

func newBackupsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List available backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := backup.List(cfg.BackupsDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Println("No backups found")
				return nil
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}
}

func newRestoreCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <archive>",
		Short: "Replace the data files with the contents of a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("restore overwrites current data files; re-run with --yes to confirm")
			}
			restored, err := backup.Restore(args[0], cfg.DataDir)
			if err != nil {
				return err
			}
			fmt.Printf("Restored %d file(s) into %s:\n", len(restored), cfg.DataDir)
			for _, name := range restored {
				fmt.Println("  " + name)
			}
			fmt.Println("Restart the server to pick up the restored data.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm overwriting the current data files")
	return cmd
}

// siblingBinary resolves a binary that ships alongside this tool, falling
// back to PATH lookup by bare name.
func siblingBinary(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	candidate := filepath.Join(filepath.Dir(exe), name)
	if _, err := os.Stat(candidate); err != nil {
		return name
	}
	return candidate
}
