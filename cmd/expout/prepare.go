package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fractalqb/expout"
)

const stdSuffix = ".expout.yaml"

func init() {
	prepareCmd.RunE = prepareFiles
	prepareCmd.Flags().StringVarP(
		&prepareCmd.suffix,
		"suffix", "s",
		prepareCmd.suffix,
		"Set file suffix for created expectation files")
	prepareCmd.Flags().BoolVarP(
		&prepareCmd.force,
		"force", "f",
		prepareCmd.force,
		"Force to overwrite existing expectation files")
	prepareCmd.Flags().StringVarP(&prepareCmd.tmpl.Label, "label", "l", "",
		"Set the label of the expectation")
	prepareCmd.Flags().BoolVarP(&prepareCmd.tmpl.Unordered, "unordered", "u", false,
		"Expect output lines in any order")
	prepareCmd.Flags().BoolVar(&prepareCmd.tmpl.Subset, "subset", false,
		"Expect the lines to be a subset of the output")
	prepareCmd.Flags().StringVar(&prepareCmd.tmpl.Except, "except", "",
		"Ignore lines matching this regexp on both sides")
	rootCmd.AddCommand(&prepareCmd.Command)
}

var prepareCmd = struct {
	cobra.Command
	suffix string
	force  bool
	tmpl   expout.File
}{
	Command: cobra.Command{
		Use:   "prepare [OUTPUT...]",
		Short: "Prepare expectation files from captured output",
	},
	suffix: stdSuffix,
	force:  false,
}

func prepareFiles(cmd *cobra.Command, files []string) error {
	if len(files) == 0 {
		return expout.Prepare(cmd.OutOrStdout(), cmd.InOrStdin(), prepareCmd.tmpl)
	}
	for _, f := range files {
		if err := prepareFile(f); err != nil {
			return err
		}
	}
	return nil
}

func prepareFile(name string) (err error) {
	expfile := name + prepareCmd.suffix
	if _, err := os.Stat(expfile); !os.IsNotExist(err) {
		if !prepareCmd.force {
			return fmt.Errorf("%s already exists", expfile)
		}
	}
	rd, err := os.Open(name)
	if err != nil {
		return err
	}
	defer rd.Close()
	wr, err := os.Create(expfile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wr.Close(); err == nil {
			err = cerr
		}
	}()
	if err = expout.Prepare(wr, rd, prepareCmd.tmpl); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger().Info("prepared expectation", zap.String("file", expfile))
	return nil
}
