package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/logging"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Create or drop the sparkify tables",
}

var tablesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the fact and dimension tables if they do not exist",
	Args:  cobra.NoArgs,
	RunE:  runTablesCreate,
}

var tablesDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the fact and dimension tables",
	Long: `Drop removes songplays, users, songs, artists and time, including all
loaded data. Tables that do not exist are skipped.`,
	Args: cobra.NoArgs,
	RunE: runTablesDrop,
}

type tablesFlagValues struct {
	conn       connFlagValues
	configPath string
}

var (
	tablesCreateFlags tablesFlagValues
	tablesDropFlags   tablesFlagValues
)

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.AddCommand(tablesCreateCmd, tablesDropCmd)

	for cmd, flags := range map[*cobra.Command]*tablesFlagValues{
		tablesCreateCmd: &tablesCreateFlags,
		tablesDropCmd:   &tablesDropFlags,
	} {
		addConnectionFlags(cmd, &flags.conn)
		cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to a project config file")
	}
}

func runTablesCreate(cmd *cobra.Command, args []string) error {
	return runTables(cmd, &tablesCreateFlags, true)
}

func runTablesDrop(cmd *cobra.Command, args []string) error {
	return runTables(cmd, &tablesDropFlags, false)
}

func runTables(cmd *cobra.Command, flags *tablesFlagValues, create bool) error {
	verbose := getVerboseFlag(cmd)

	projectCfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return err
	}

	connConfig, err := resolveConnection(&flags.conn, projectCfg, verbose)
	if err != nil {
		return err
	}

	logger, err := logging.New(resolveLogFormat(getLogFormatFlag(cmd), projectCfg), verbose, "")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	etl := newETLService(logger)
	if create {
		err = etl.CreateTables(ctx, connConfig)
	} else {
		err = etl.DropTables(ctx, connConfig)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd.CommandPath(), err)
	}
	return nil
}
