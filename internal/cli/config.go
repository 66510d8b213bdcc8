package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/jbonatakis/cabinlog/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Settings are read from ~/.cabinlog/config.yaml and .cabinlog/config.yaml in the
project directory; project values win over global ones.`,
	}
	cmd.AddCommand(newConfigListCmd(e), newConfigSetCmd(e), newConfigUnsetCmd(e))
	return cmd
}

type setting struct {
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	Default     string `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

func newConfigListCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show resolved settings",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			var settings []setting
			for _, opt := range config.OptionRegistry() {
				value, _ := config.ValueOf(e.cfg, opt.KeyPath)
				settings = append(settings, setting{Key: opt.KeyPath, Value: value, Default: opt.Default, Description: opt.Description})
			}
			if format != formatHuman {
				return writeStructured(e.stdout, format, settings)
			}
			w := tabwriter.NewWriter(e.stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE\tDEFAULT\tDESCRIPTION")
			for _, s := range settings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Key, s.Value, s.Default, s.Description)
			}
			return w.Flush()
		},
	}
	addOutputFlag(cmd, &format)
	return cmd
}

func newConfigSetCmd(e *env) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting in the project (or global) config",
		Args:  exactArgs(2, "<key> <value>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := e.configLayerPath(global)
			if err != nil {
				return err
			}
			if err := config.SetValue(path, args[0], args[1]); err != nil {
				return configUsageError(err)
			}
			printSuccess(e.stdout, fmt.Sprintf("%s = %s (%s)", args[0], args[1], path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "write the global config instead of the project one")
	return cmd
}

func newConfigUnsetCmd(e *env) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting from the project (or global) config",
		Args:  exactArgs(1, "<key>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := e.configLayerPath(global)
			if err != nil {
				return err
			}
			if err := config.UnsetValue(path, args[0]); err != nil {
				return configUsageError(err)
			}
			printSuccess(e.stdout, fmt.Sprintf("%s unset (%s)", args[0], path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "edit the global config instead of the project one")
	return cmd
}

func (e *env) configLayerPath(global bool) (string, error) {
	if global {
		path := config.GlobalConfigPath()
		if path == "" {
			return "", errors.New("home directory unavailable for the global config")
		}
		return path, nil
	}
	return config.ProjectConfigPath(e.workDir), nil
}

func configUsageError(err error) error {
	if errors.Is(err, config.ErrUnknownKey) {
		return UsageError{Message: err.Error()}
	}
	return err
}
