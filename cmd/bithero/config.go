package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or print the game configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config for editing",
	Long: `Writes the default configuration to ~/.bithero/configs/rhythm.yaml,
or to the given path. Existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	Run:  run(runConfigInit),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration in effect",
	Run:   run(runConfigShow),
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(_ *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		dir := config.DataDir()
		if dir == "" {
			return fmt.Errorf("cannot find home directory; pass a path")
		}
		path = filepath.Join(dir, "configs", config.FileName)
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
